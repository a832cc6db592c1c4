package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/service/user"
)

func TestUserService_AssignRole(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("promotes a user to chef", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: string(domain.RoleUser)}, nil).Once()
		userRepo.On("AssignRole", ctx, targetID, string(domain.RoleChef)).Return(nil).Once()

		err := svc.AssignRole(ctx, admin, domain.AssignRoleInput{UserID: targetID, Role: string(domain.RoleChef)})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository), new(mocks.DepartmentRepository))

		err := svc.AssignRole(ctx, admin, domain.AssignRoleInput{UserID: admin.ID, Role: string(domain.RoleUser)})

		assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository), new(mocks.DepartmentRepository))

		err := svc.AssignRole(ctx, admin, domain.AssignRoleInput{UserID: uuid.New(), Role: "superviseur"})

		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("target must exist", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		userRepo.On("GetByID", ctx, targetID).Return(nil, nil).Once()

		err := svc.AssignRole(ctx, admin, domain.AssignRoleInput{UserID: targetID, Role: string(domain.RoleUser)})

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserService_AssignChef(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a chef to a user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		chefID := uuid.New()

		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: string(domain.RoleUser)}, nil).Once()
		userRepo.On("GetByID", ctx, chefID).Return(&domain.User{ID: chefID, Role: string(domain.RoleChef)}, nil).Once()
		userRepo.On("AssignChef", ctx, targetID, &chefID).Return(nil).Once()

		err := svc.AssignChef(ctx, domain.AssignChefInput{UserID: targetID, ChefID: &chefID})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("assigned chef must hold the chef role", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		notAChefID := uuid.New()

		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: string(domain.RoleUser)}, nil).Once()
		userRepo.On("GetByID", ctx, notAChefID).Return(&domain.User{ID: notAChefID, Role: string(domain.RoleUser)}, nil).Once()

		err := svc.AssignChef(ctx, domain.AssignChefInput{UserID: targetID, ChefID: &notAChefID})

		assert.ErrorIs(t, err, user.ErrInvalidChef)
	})

	t.Run("nil chef clears the assignment", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, Role: string(domain.RoleUser)}, nil).Once()
		userRepo.On("AssignChef", ctx, targetID, (*uuid.UUID)(nil)).Return(nil).Once()

		err := svc.AssignChef(ctx, domain.AssignChefInput{UserID: targetID, ChefID: nil})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("changing email checks uniqueness", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		userID := uuid.New()
		existing := &domain.User{ID: userID, Email: "old@example.com", FullName: "Nadia K."}
		newEmail := "taken@example.com"

		userRepo.On("GetByID", ctx, userID).Return(existing, nil).Once()
		userRepo.On("ExistsByEmail", ctx, newEmail).Return(true, nil).Once()

		_, err := svc.UpdateProfile(ctx, userID, domain.UpdateUserInput{Email: &newEmail})

		assert.ErrorIs(t, err, user.ErrEmailInUse)
	})

	t.Run("missing user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		userID := uuid.New()
		userRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		_, err := svc.UpdateProfile(ctx, userID, domain.UpdateUserInput{})

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("cannot delete own account", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository), new(mocks.DepartmentRepository))

		err := svc.DeleteUser(ctx, admin, admin.ID)

		assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	})

	t.Run("soft deletes an existing user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.DepartmentRepository))

		targetID := uuid.New()
		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID}, nil).Once()
		userRepo.On("Delete", ctx, targetID).Return(nil).Once()

		assert.NoError(t, svc.DeleteUser(ctx, admin, targetID))
		userRepo.AssertExpectations(t)
	})
}
