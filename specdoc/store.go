// Package specdoc loads the OpenAPI document the viewer renders and serves it
// over HTTP. The document is never validated; it is produced and deployed
// separately and only its info block is read for display purposes.
package specdoc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the document file has no content.
var ErrEmptyDocument = errors.New("specdoc: empty document")

const defaultDebounce = 250 * time.Millisecond

// Info is the descriptive part of the document.
type Info struct {
	OpenAPI string `json:"openapi,omitempty"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

type document struct {
	data    []byte
	info    Info
	modTime time.Time
}

// Store holds the most recently loaded document.
type Store struct {
	path     string
	logger   *slog.Logger
	doc      atomic.Pointer[document]
	debounce time.Duration
	onReload func(err error)
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce sets how long the watcher waits for file events to settle
// before reloading.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithReloadHook registers fn to be called after every reload attempt made
// by the watcher, with the reload error or nil.
func WithReloadHook(fn func(err error)) Option {
	return func(s *Store) { s.onReload = fn }
}

// Open reads the document at path.
func Open(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("specdoc: resolve %q: %w", path, err)
	}

	s := &Store{
		path:     abs,
		logger:   logger,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the absolute path of the document file.
func (s *Store) Path() string {
	return s.path
}

// Reload reads the document file again. On failure the previously loaded
// document stays in place.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("specdoc: read %q: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDocument, s.path)
	}

	modTime := time.Now()
	if stat, err := os.Stat(s.path); err == nil {
		modTime = stat.ModTime()
	}

	doc := &document{
		data:    data,
		info:    parseInfo(data),
		modTime: modTime,
	}
	s.doc.Store(doc)

	s.logger.Debug("specification document loaded",
		"path", s.path,
		"bytes", len(data),
		"title", doc.info.Title)
	return nil
}

// Bytes returns the raw document.
func (s *Store) Bytes() []byte {
	return s.doc.Load().data
}

// Info returns the document info block. It is empty when the document is
// not parseable YAML.
func (s *Store) Info() Info {
	return s.doc.Load().info
}

// ModTime returns the modification time of the loaded document.
func (s *Store) ModTime() time.Time {
	return s.doc.Load().modTime
}

// Ping reports whether the document file is still present on disk.
func (s *Store) Ping() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("specdoc: stat %q: %w", s.path, err)
	}
	return nil
}

// ServeHTTP writes the loaded document.
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc := s.doc.Load()
	w.Header().Set("Content-Type", contentTypeFor(s.path))
	http.ServeContent(w, r, filepath.Base(s.path), doc.modTime, bytes.NewReader(doc.data))
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "application/json"
	default:
		return "application/yaml"
	}
}

func parseInfo(data []byte) Info {
	var raw struct {
		OpenAPI string `yaml:"openapi"`
		Swagger string `yaml:"swagger"`
		Info    struct {
			Title   string `yaml:"title"`
			Version string `yaml:"version"`
		} `yaml:"info"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Info{}
	}

	info := Info{
		OpenAPI: raw.OpenAPI,
		Title:   raw.Info.Title,
		Version: raw.Info.Version,
	}
	if info.OpenAPI == "" {
		info.OpenAPI = raw.Swagger
	}
	return info
}
