package commands

import (
	"context"
	"fmt"
	"log/slog"

	userUseCase "github.com/allisson/authkit/internal/user/usecase"
)

// RunDeleteUser removes an account. Tokens issued to it stop resolving.
func RunDeleteUser(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	io IOTuple,
) error {
	if err := useCase.Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("user deleted", slog.String("username", username))
	_, _ = fmt.Fprintf(io.Writer, "User %s deleted successfully.\n", username)
	return nil
}
