package commands

import (
	"context"
	"fmt"
	"log/slog"

	userUseCase "github.com/allisson/authkit/internal/user/usecase"
)

// RunUpdateUserStatus enables or disables an account. Disabling takes effect
// on the next token resolve, including tokens that were already issued.
func RunUpdateUserStatus(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	disabled bool,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	user, err := useCase.SetDisabled(ctx, username, disabled)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	logger.Info("user status updated",
		slog.String("username", user.Username),
		slog.Bool("disabled", user.Disabled),
	)

	if format == FormatJSON {
		return writeJSON(io.Writer, userOutput(user))
	}

	outputUserText(user, "User status updated successfully!", io.Writer)
	return nil
}
