package department_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/service/department"
)

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates department", func(t *testing.T) {
		deptRepo := new(mocks.DepartmentRepository)
		svc := department.NewService(deptRepo)

		deptRepo.On("GetByName", ctx, "Ressources Humaines").Return(nil, nil).Once()
		deptRepo.On("Create", ctx, mock.MatchedBy(func(d *domain.Department) bool {
			return d.Name == "Ressources Humaines" && d.ID != uuid.Nil
		})).Return(nil).Once()

		dept, err := svc.Create(ctx, domain.CreateDepartmentInput{Name: "Ressources Humaines"})

		assert.NoError(t, err)
		assert.Equal(t, "Ressources Humaines", dept.Name)
		deptRepo.AssertExpectations(t)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		deptRepo := new(mocks.DepartmentRepository)
		svc := department.NewService(deptRepo)

		deptRepo.On("GetByName", ctx, "Finance").Return(&domain.Department{Name: "Finance"}, nil).Once()

		_, err := svc.Create(ctx, domain.CreateDepartmentInput{Name: "Finance"})

		assert.ErrorIs(t, err, department.ErrNameExists)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rename to a free name", func(t *testing.T) {
		deptRepo := new(mocks.DepartmentRepository)
		svc := department.NewService(deptRepo)

		deptID := uuid.New()
		newName := "Direction Financière"

		deptRepo.On("GetByID", ctx, deptID).Return(&domain.Department{ID: deptID, Name: "Finance"}, nil).Once()
		deptRepo.On("GetByName", ctx, newName).Return(nil, nil).Once()
		deptRepo.On("Update", ctx, mock.MatchedBy(func(d *domain.Department) bool {
			return d.Name == newName
		})).Return(nil).Once()

		dept, err := svc.Update(ctx, deptID, domain.UpdateDepartmentInput{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, newName, dept.Name)
	})

	t.Run("missing department", func(t *testing.T) {
		deptRepo := new(mocks.DepartmentRepository)
		svc := department.NewService(deptRepo)

		deptID := uuid.New()
		deptRepo.On("GetByID", ctx, deptID).Return(nil, nil).Once()

		_, err := svc.Update(ctx, deptID, domain.UpdateDepartmentInput{})

		assert.ErrorIs(t, err, department.ErrNotFound)
	})
}
