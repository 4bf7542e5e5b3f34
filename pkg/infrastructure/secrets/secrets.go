package secrets

import (
	"context"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// SecretsAdapter fetches secrets from Google Secret Manager, preferring an
// environment variable of the same name for local development.
type SecretsAdapter struct {
	// access overrides the Secret Manager call in tests.
	access func(ctx context.Context, name string) (*secretmanagerpb.SecretPayload, error)
}

var crc32c = crc32.MakeTable(crc32.Castagnoli)

// GetSecret returns the latest version of secretName.
func (a *SecretsAdapter) GetSecret(ctx context.Context, projectID, secretName string) (string, error) {
	// 1. Local Fallback
	if val := os.Getenv(secretName); val != "" {
		slog.Debug("Using local env var for secret", "component", "secrets", "secret", secretName)
		return val, nil
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName)

	access := a.access
	if access == nil {
		access = accessLatest
	}
	payload, err := access(ctx, name)
	if err != nil {
		return "", apperrors.WrapRetryable(err, apperrors.CodeSecretError, "failed to access secret version").
			WithMetadata("secret", secretName)
	}

	// Verify the data checksum.
	checksum := int64(crc32.Checksum(payload.Data, crc32c))
	if payload.DataCrc32C != nil && *payload.DataCrc32C != checksum {
		return "", apperrors.New(apperrors.CodeSecretError, "secret payload checksum mismatch").
			WithMetadata("secret", secretName)
	}

	return string(payload.Data), nil
}

func accessLatest(ctx context.Context, name string) (*secretmanagerpb.SecretPayload, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}
