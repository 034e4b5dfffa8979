// Package storage wraps S3-compatible object storage. Objects are streamed; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for profile pictures, meal photos and uploads.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL returns a stable link when a public base URL is configured,
	// otherwise a presigned link valid for the configured TTL.
	PublicURL(ctx context.Context, key string) (string, error)
}

// Key prefixes group objects by use.
const (
	PrefixProfile = "profile"
	PrefixUpload  = "uploads"
)

// NewObjectKey builds a collision-free key under prefix, keeping the lowercased
// extension of the original filename.
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	key := uuid.NewString() + ext
	if prefix == "" {
		return key
	}
	return strings.Trim(prefix, "/") + "/" + key
}
