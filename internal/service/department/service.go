package department

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
)

var (
	ErrNotFound   = errors.New("department not found")
	ErrNameExists = errors.New("department name already exists")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateDepartmentInput) (*domain.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	deptRepo repository.DepartmentRepository
}

func NewService(deptRepo repository.DepartmentRepository) Service {
	return &service{deptRepo: deptRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateDepartmentInput) (*domain.Department, error) {
	existing, err := s.deptRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameExists
	}

	dept := &domain.Department{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, ErrNotFound
	}
	return dept, nil
}

func (s *service) List(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil && *input.Name != dept.Name {
		existing, err := s.deptRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrNameExists
		}
		dept.Name = *input.Name
	}
	if input.Description != nil {
		dept.Description = *input.Description
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if dept == nil {
		return ErrNotFound
	}

	return s.deptRepo.Delete(ctx, id)
}
