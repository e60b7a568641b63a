package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	authService "github.com/allisson/authkit/internal/auth/service"
)

// SigningKeySize is the number of random bytes in a generated signing key.
const SigningKeySize = 32

// CreateSigningKeyParams holds the flags of the create-signing-key command.
type CreateSigningKeyParams struct {
	KeyID       string
	KMSProvider string
	KMSKeyURI   string
}

// RunCreateSigningKey generates a random HMAC signing key and prints the
// environment variables that configure it. With a KMS key URI the key is
// sealed by KMS and only the ciphertext is printed. If KeyID is empty a
// default in the format "signing-key-YYYY-MM-DD" is used.
//
// Output format:
//   - TOKEN_SIGNING_KEY_ID="<keyID>"
//   - TOKEN_SIGNING_KEY="<base64 key or KMS ciphertext>"
//   - KMS_PROVIDER="<provider>" and KMS_KEY_URI="<uri>" in KMS mode
func RunCreateSigningKey(
	ctx context.Context,
	loader *authService.SigningKeyLoader,
	params CreateSigningKeyParams,
	io IOTuple,
) error {
	if (params.KMSProvider == "") != (params.KMSKeyURI == "") {
		return fmt.Errorf(
			"--kms-provider and --kms-key-uri must be used together\n\nFor local development, use:\n  --kms-provider=localsecrets --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
		)
	}

	keyID := params.KeyID
	if keyID == "" {
		keyID = fmt.Sprintf("signing-key-%s", time.Now().Format("2006-01-02"))
	}

	secret := make([]byte, SigningKeySize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer authDomain.Zero(secret)

	encoded, err := loader.Seal(ctx, params.KMSKeyURI, secret)
	if err != nil {
		return fmt.Errorf("failed to seal signing key: %w", err)
	}

	if params.KMSKeyURI != "" {
		_, _ = fmt.Fprintln(io.Writer, "# KMS Mode: signing key encrypted with KMS")
		_, _ = fmt.Fprintf(io.Writer, "# KMS Provider: %s\n", params.KMSProvider)
		_, _ = fmt.Fprintln(io.Writer)
		_, _ = fmt.Fprintf(io.Writer, "KMS_PROVIDER=\"%s\"\n", params.KMSProvider)
		_, _ = fmt.Fprintf(io.Writer, "KMS_KEY_URI=\"%s\"\n", params.KMSKeyURI)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "# Plaintext Mode: store this value in a secret manager")
		_, _ = fmt.Fprintln(io.Writer)
	}
	_, _ = fmt.Fprintf(io.Writer, "TOKEN_SIGNING_KEY_ID=\"%s\"\n", keyID)
	_, _ = fmt.Fprintf(io.Writer, "TOKEN_SIGNING_KEY=\"%s\"\n", encoded)

	return nil
}
