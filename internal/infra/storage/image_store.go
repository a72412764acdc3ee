// Package storage implements blob-bucket backed object storage services.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"tienda/config"
	"tienda/internal/domain/lifecycle"
	"tienda/internal/domain/service"
	"tienda/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local file bucket driver
)

// blobImageStore implements ImageStore on top of a gocloud.dev blob bucket.
type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// disabledImageStore rejects uploads when no bucket is configured.
type disabledImageStore struct{}

func (disabledImageStore) SaveProductImage(context.Context, uuid.UUID, string, io.Reader) (string, error) {
	return "", errors.New("image storage is not configured")
}

// ImageStoreParams holds dependencies for the image store, injected by Fx.
type ImageStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured blob bucket. When storage is not
// configured it returns a disabled implementation so the catalog still works
// without image uploads.
func NewImageStore(params ImageStoreParams) (service.ImageStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Image storage not configured, uploads disabled")

		return disabledImageStore{}, nil
	}

	ctx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Image storage initialized", slog.String("bucket", cfg.BucketURL))

	return &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// SaveProductImage writes the image under products/<id> and returns its URL.
func (s *blobImageStore) SaveProductImage(ctx context.Context, productID uuid.UUID, contentType string, r io.Reader) (string, error) {
	key := "products/" + productID.String() + extensionFor(contentType)

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()

		return "", errors.Wrap(err, "failed to write image to bucket")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image write")
	}

	return s.publicBaseURL + "/" + key, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
