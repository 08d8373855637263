package entity

import (
	"errors"
	"strings"
	"time"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
	// FileTypePhoto is the legacy default for rows written before the type
	// was derived from the upload's content type.
	FileTypePhoto FileType = "photo"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidPostID  = errors.New("invalid post id")
	ErrUploadRejected = errors.New("media upload rejected")
)

type Post struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FileTypeFromContentType classifies an upload by its declared MIME type.
func FileTypeFromContentType(contentType string) FileType {
	if strings.HasPrefix(contentType, "video/") {
		return FileTypeVideo
	}
	return FileTypeImage
}
