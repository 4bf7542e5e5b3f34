package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"cloud.google.com/go/storage"

	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// StorageAdapter reads and writes plan artifacts in Google Cloud Storage.
type StorageAdapter struct {
	Client *storage.Client
}

func (a *StorageAdapter) Write(ctx context.Context, bucketName, objectName string, data []byte) error {
	wc := a.Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentTypeFor(objectName)
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to write object").
			WithMetadata("object", URI(bucketName, objectName))
	}
	if err := wc.Close(); err != nil {
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to finalize object").
			WithMetadata("object", URI(bucketName, objectName))
	}
	slog.Debug("Wrote object", "uri", URI(bucketName, objectName), "size_bytes", len(data))
	return nil
}

func (a *StorageAdapter) Read(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	rc, err := a.Client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageError, "failed to open object").
			WithMetadata("object", URI(bucketName, objectName))
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// URI returns the gs:// address of an object.
func URI(bucketName, objectName string) string {
	return fmt.Sprintf("gs://%s/%s", bucketName, objectName)
}

func contentTypeFor(objectName string) string {
	switch path.Ext(objectName) {
	case ".fit":
		return "application/vnd.ant.fit"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}
