package secrets

import (
	"context"
	"errors"
	"hash/crc32"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

func TestGetSecret_EnvVar(t *testing.T) {
	t.Setenv("TEST_SECRET", "local_value")

	adapter := &SecretsAdapter{
		access: func(ctx context.Context, name string) (*secretmanagerpb.SecretPayload, error) {
			t.Error("Secret Manager should not be called when env var is set")
			return nil, nil
		},
	}

	val, err := adapter.GetSecret(context.Background(), "test-project", "TEST_SECRET")
	if err != nil {
		t.Fatalf("Expected check to succeed, got error: %v", err)
	}
	if val != "local_value" {
		t.Errorf("Expected 'local_value', got '%s'", val)
	}
}

func TestGetSecret_SecretManager(t *testing.T) {
	data := []byte("api-token")
	sum := int64(crc32.Checksum(data, crc32.MakeTable(crc32.Castagnoli)))
	bad := sum + 1

	tests := []struct {
		name      string
		payload   *secretmanagerpb.SecretPayload
		accessErr error
		want      string
		wantErr   bool
	}{
		{
			name:    "checksum verified",
			payload: &secretmanagerpb.SecretPayload{Data: data, DataCrc32C: &sum},
			want:    "api-token",
		},
		{
			name:    "no checksum",
			payload: &secretmanagerpb.SecretPayload{Data: data},
			want:    "api-token",
		},
		{
			name:    "checksum mismatch",
			payload: &secretmanagerpb.SecretPayload{Data: data, DataCrc32C: &bad},
			wantErr: true,
		},
		{
			name:      "access failure",
			accessErr: errors.New("permission denied"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotName string
			adapter := &SecretsAdapter{
				access: func(ctx context.Context, name string) (*secretmanagerpb.SecretPayload, error) {
					gotName = name
					return tt.payload, tt.accessErr
				},
			}

			val, err := adapter.GetSecret(context.Background(), "proj", "FITFUEL_UNSET_SECRET")
			if gotName != "projects/proj/secrets/FITFUEL_UNSET_SECRET/versions/latest" {
				t.Errorf("Unexpected secret name %q", gotName)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				if apperrors.GetCode(err) != apperrors.CodeSecretError {
					t.Errorf("Expected secret error code, got %s", apperrors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if val != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, val)
			}
		})
	}
}
