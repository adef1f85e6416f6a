package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/vendoz/app/helpers"
	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"go.uber.org/zap"
)

type SignupInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin customer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Message    string `json:"message"`
	Token      string `json:"token"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirectTo"`
}

// UpdateUserInput holds the fields a PUT may change. Nil means untouched.
type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin customer"`
}

type UserService struct {
	userRepo repositories.UserRepositoryImpl
	tokens   *TokenService
}

func NewUserService(userRepo repositories.UserRepositoryImpl, tokens *TokenService) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// Signup registers a user. The requested role is only honoured when the caller is an admin.
func (s *UserService) Signup(ctx context.Context, input SignupInput, caller *Identity) (*models.User, error) {
	role := models.RoleCustomer
	if caller != nil && caller.IsAdmin() && input.Role != "" {
		role = input.Role
	}

	hashed, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    models.NormalizeEmail(input.Email),
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	zap.S().Infof("User %s registered with role %s", user.Email, user.Role)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !helpers.PasswordCompare(user.Password, []byte(input.Password)) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, err
	}

	redirect := "/"
	if user.IsAdmin() {
		redirect = "/admin"
	}
	return &LoginResult{Message: "Login successful", Token: token, Role: user.Role, RedirectTo: redirect}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// Update applies input to the user. Only admins may change a role.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput, caller Identity) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, invalid("full_name cannot be empty")
		}
		user.FullName = name
	}
	if input.Email != nil {
		email := models.NormalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := helpers.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.Role != nil && *input.Role != user.Role {
		if !caller.IsAdmin() {
			return nil, ErrForbidden
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// EnsureAdmin creates an admin account or promotes an existing one. Used by the CLI.
func (s *UserService) EnsureAdmin(ctx context.Context, fullName, email, password string) (*models.User, bool, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		existing.Role = models.RoleAdmin
		if password != "" {
			hashed, err := helpers.HashPassword(password)
			if err != nil {
				return nil, false, err
			}
			existing.Password = hashed
		}
		if fullName != "" {
			existing.FullName = fullName
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	if password == "" {
		return nil, false, invalid("password is required for a new admin")
	}
	admin, err := s.Signup(ctx, SignupInput{FullName: fullName, Email: email, Password: password, Role: models.RoleAdmin},
		&Identity{Role: models.RoleAdmin})
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
