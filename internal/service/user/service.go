package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailInUse       = errors.New("email already in use")
	ErrCannotModifySelf = errors.New("cannot modify your own role")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidChef      = errors.New("assigned chef must have the chef role")
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
	AssignRole(ctx context.Context, currentUser *domain.User, input domain.AssignRoleInput) error
	AssignChef(ctx context.Context, input domain.AssignChefInput) error
	DeleteUser(ctx context.Context, currentUser *domain.User, userID uuid.UUID) error
}

type service struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
}

func NewService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository) Service {
	return &service{userRepo: userRepo, deptRepo: deptRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.DepartmentID != nil {
		if dept, err := s.deptRepo.GetByID(ctx, *user.DepartmentID); err == nil {
			user.Department = dept
		}
	}
	if user.ChefID != nil {
		if chef, err := s.userRepo.GetByID(ctx, *user.ChefID); err == nil {
			user.Chef = chef
		}
	}

	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailInUse
		}
		user.Email = *input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}
	if input.Position != nil {
		user.Position = *input.Position
	}
	if input.DepartmentID != nil {
		user.DepartmentID = *input.DepartmentID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *service) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *service) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	if !domain.UserRole(role).IsValid() {
		return nil, ErrInvalidRole
	}
	return s.userRepo.ListByRole(ctx, role)
}

// AssignRole is the only way a role changes; users never change their own.
func (s *service) AssignRole(ctx context.Context, currentUser *domain.User, input domain.AssignRoleInput) error {
	if currentUser.ID == input.UserID {
		return ErrCannotModifySelf
	}
	if !domain.UserRole(input.Role).IsValid() {
		return ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.userRepo.AssignRole(ctx, input.UserID, input.Role)
}

func (s *service) AssignChef(ctx context.Context, input domain.AssignChefInput) error {
	target, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if input.ChefID != nil {
		chef, err := s.userRepo.GetByID(ctx, *input.ChefID)
		if err != nil {
			return err
		}
		if chef == nil {
			return ErrUserNotFound
		}
		if !chef.HasRole(string(domain.RoleChef)) {
			return ErrInvalidChef
		}
	}

	return s.userRepo.AssignChef(ctx, input.UserID, input.ChefID)
}

func (s *service) DeleteUser(ctx context.Context, currentUser *domain.User, userID uuid.UUID) error {
	if currentUser.ID == userID {
		return ErrCannotModifySelf
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.userRepo.Delete(ctx, userID)
}
