package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/authkit/internal/database"
	apperrors "github.com/allisson/authkit/internal/errors"
	"github.com/allisson/authkit/internal/user/domain"
	appValidation "github.com/allisson/authkit/internal/validation"
)

// userUseCase implements UserUseCase on top of a UserRepository.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher PasswordHasher
	now            func() time.Time
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordHasher PasswordHasher,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func validateCreateUserInput(input *CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 64),
			appValidation.Username,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&input.FullName, validation.Length(0, 255)),
		validation.Field(&input.Email,
			validation.Length(0, 255),
			validation.When(input.Email != "", appValidation.Email),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create validates the input, hashes the password and stores the user.
func (u *userUseCase) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	hash, err := u.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := u.now()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Disabled:     input.Disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given username.
func (u *userUseCase) Get(ctx context.Context, username string) (*domain.User, error) {
	return u.userRepo.FindByUsername(ctx, username)
}

// SetDisabled reads, flips and writes the user inside one transaction.
func (u *userUseCase) SetDisabled(ctx context.Context, username string, disabled bool) (*domain.User, error) {
	var user *domain.User

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		found, err := u.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		found.Disabled = disabled
		found.UpdatedAt = u.now()
		if err := u.userRepo.Update(ctx, found); err != nil {
			return err
		}

		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user with the given username.
func (u *userUseCase) Delete(ctx context.Context, username string) error {
	if username == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "username is required")
	}
	return u.userRepo.Delete(ctx, username)
}
