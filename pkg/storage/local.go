package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Local writes files below a directory and serves them under /images.
type Local struct {
	fs      afero.Fs
	baseURL string
	log     *zap.Logger
}

// NewLocal roots the store at dir on the OS filesystem.
func NewLocal(dir, publicBaseURL string, log *zap.Logger) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return NewLocalFs(afero.NewBasePathFs(afero.NewOsFs(), dir), publicBaseURL, log), nil
}

// NewLocalFs uses fs as the upload root.
func NewLocalFs(fs afero.Fs, publicBaseURL string, log *zap.Logger) *Local {
	return &Local{
		fs:      fs,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		log:     log.With(zap.String("storage", "local")),
	}
}

func (l *Local) Save(_ context.Context, key string, r io.Reader, _ string) (Object, error) {
	key = cleanKey(key)
	if key == "" {
		return Object{}, fmt.Errorf("local: object key is required")
	}

	if err := l.fs.MkdirAll(path.Dir("/"+key), 0755); err != nil {
		return Object{}, fmt.Errorf("local: create dir for %s: %w", key, err)
	}
	if err := afero.WriteReader(l.fs, "/"+key, r); err != nil {
		return Object{}, fmt.Errorf("local: write %s: %w", key, err)
	}

	obj := Object{URL: l.baseURL + "/images/" + key, Path: key}
	l.log.Debug("File saved", zap.String("path", key))
	return obj, nil
}

// Remove deletes path. A missing file is not an error.
func (l *Local) Remove(_ context.Context, p string) error {
	p = cleanKey(p)
	if err := l.fs.Remove("/" + p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local: remove %s: %w", p, err)
	}
	return nil
}

func (l *Local) Handler() http.Handler {
	return http.FileServer(afero.NewHttpFs(l.fs).Dir("/"))
}

func cleanKey(key string) string {
	key = path.Clean("/" + strings.TrimSpace(key))
	return strings.TrimPrefix(key, "/")
}

var _ FileStore = (*Local)(nil)
var _ Server = (*Local)(nil)
