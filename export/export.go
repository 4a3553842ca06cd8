package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/writing/logger"
	writinghttp "github.com/programme-lv/writing/writing/http"
	"github.com/programme-lv/writing/writing/srvc"
)

const mediaType = "application/zstd"

const keyPrefix = "writing-exports/"

// Bucket is satisfied by *s3bucket.S3Bucket.
type Bucket interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

type Exporter struct {
	writingSrvc srvc.WritingSrvcClient
	bucket      Bucket
}

func NewExporter(writingSrvc srvc.WritingSrvcClient, bucket Bucket) *Exporter {
	return &Exporter{writingSrvc: writingSrvc, bucket: bucket}
}

func userPrefix(userID string) string {
	return keyPrefix + userID + "/"
}

// DefaultKey names an export object by user and time.
func DefaultKey(userID string, at time.Time) string {
	return fmt.Sprintf("%s%s.json.zst", userPrefix(userID), at.UTC().Format("20060102T150405Z"))
}

// ExportUser uploads the user's submission list, in the same shape the
// API returns it, as zstd compressed JSON. An existing object is only
// replaced when overwrite is set. It returns the object URL.
func (e *Exporter) ExportUser(ctx context.Context, userID, key string, overwrite bool) (string, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		key = DefaultKey(userID, time.Now())
	}
	if !overwrite {
		exists, err := e.bucket.Exists(ctx, key)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("object %s already exists", key)
		}
	}

	subms, err := e.writingSrvc.ListUserSubms(ctx, userID)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(writinghttp.ListSubmissionsResponse{
		Submissions: writinghttp.MapSubmViews(subms),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode submissions: %w", err)
	}

	compressed, err := compressWithZstd(body)
	if err != nil {
		return "", err
	}

	url, err := e.bucket.Upload(ctx, compressed, key, mediaType)
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	log.Info("exported writing submissions",
		"user_id", userID, "count", len(subms), "key", key,
		"raw_bytes", len(body), "compressed_bytes", len(compressed))
	return url, nil
}

// ListExports returns the keys of earlier exports for userID.
func (e *Exporter) ListExports(ctx context.Context, userID string) ([]string, error) {
	return e.bucket.ListFiles(ctx, userPrefix(userID))
}

func compressWithZstd(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}
