package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"villa-rental/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// MaxImageSize is the upload limit for a single photo.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("only jpeg, png and webp images are allowed")
	ErrTooLarge        = errors.New("image exceeds 5MB")
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Object is a stored file. URL is public, Path is what Remove expects.
type Object struct {
	URL  string
	Path string
}

// FileStore keeps uploaded photos.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	Remove(ctx context.Context, path string) error
}

// Server is implemented by stores that serve their own files over HTTP.
type Server interface {
	Handler() http.Handler
}

// DetectImage sniffs data and returns its content type and file extension.
func DetectImage(data []byte) (contentType, ext string, err error) {
	if len(data) > MaxImageSize {
		return "", "", ErrTooLarge
	}

	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		if ext, ok := allowedImages[m.String()]; ok {
			return m.String(), ext, nil
		}
	}

	return "", "", ErrUnsupportedType
}

// New builds the store selected by config.Driver.
func New(config utils.StorageConfig, log *zap.Logger) (FileStore, error) {
	switch config.Driver {
	case "", "local":
		return NewLocal(config.UploadDir, config.PublicBaseURL, log)
	case "s3":
		return NewS3(config, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}
