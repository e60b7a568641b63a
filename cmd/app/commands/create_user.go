package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	userDomain "github.com/allisson/authkit/internal/user/domain"
	userUseCase "github.com/allisson/authkit/internal/user/usecase"
)

// CreateUserParams holds the flags of the create-user command.
type CreateUserParams struct {
	Username string
	Password string
	FullName string
	Email    string
	Disabled bool
	Format   string
}

// RunCreateUser registers a user account. When Password is empty it is read
// from io.Reader so it does not end up in shell history.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	params CreateUserParams,
	io IOTuple,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	password := params.Password
	if password == "" {
		var err error
		password, err = promptLine(io, "Password: ")
		if err != nil {
			return err
		}
	}

	user, err := useCase.Create(ctx, &userUseCase.CreateUserInput{
		Username: params.Username,
		Password: password,
		FullName: params.FullName,
		Email:    params.Email,
		Disabled: params.Disabled,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	if params.Format == FormatJSON {
		return writeJSON(io.Writer, userOutput(user))
	}

	outputUserText(user, "User created successfully!", io.Writer)
	return nil
}

type userJSON struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userOutput(user *userDomain.User) userJSON {
	return userJSON{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Disabled:  user.Disabled,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func outputUserText(user *userDomain.User, headline string, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "\n%s\n", headline)
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Disabled: %t\n", user.Disabled)
}
