// Package storage defines the media upload gateway used by the post service.
// Implementations live in pkg/s3 (AWS S3 and S3-compatible endpoints) and
// pkg/minio.
package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadOptions controls how the gateway names and labels an uploaded object.
type UploadOptions struct {
	// UseUniqueFileName asks the gateway to derive a collision-free name
	// from the original one instead of storing it verbatim.
	UseUniqueFileName bool
	Tags              []string
	ContentType       string
}

// UploadResult is what the gateway reports back about a stored object.
type UploadResult struct {
	// FileID identifies the object for later deletion (the object key).
	FileID string
	// Name is the canonical file name assigned by the gateway.
	Name           string
	URL            string
	HTTPStatusCode int
}

// Gateway stores raw media and returns a durable public URL.
type Gateway interface {
	Upload(ctx context.Context, r io.ReadSeeker, size int64, fileName string, opts UploadOptions) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

// ObjectName returns the name an object should be stored under.
func ObjectName(fileName string, unique bool) string {
	base := sanitize(filepath.Base(fileName))
	if !unique {
		return base
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	if stem == "" {
		return suffix + ext
	}
	return stem + "_" + suffix + ext
}

// ObjectKey joins the folder prefix and the object name.
func ObjectKey(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// PublicURL builds the browser-accessible URL of key under base.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

// EncodeTags renders tags as an S3 tagging query string, one key per tag.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	v := url.Values{}
	for _, tag := range tags {
		v.Set(tag, "true")
	}
	return v.Encode()
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}
