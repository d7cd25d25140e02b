package swagger

import (
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"sync/atomic"
)

const (
	initializerFile = "swagger-initializer.js"
	indexFile       = "index.html"
)

// Handler serves the viewer index, the per-load initializer script and,
// when configured, a local copy of the Swagger UI bundle.
type Handler struct {
	initializer *Initializer
	index       atomic.Pointer[renderedIndex]
	titleFn     atomic.Pointer[func() string]
	assetFS     fs.FS
	mountDir    string
	logger      *slog.Logger
}

type renderedIndex struct {
	title string
	page  []byte
}

// New returns a Handler that renders scripts with a ScriptFactory and stores
// handles in DefaultSlot.
func New(opts Options) (*Handler, error) {
	factory := NewScriptFactory(opts, opts.SpecURL != "")
	return NewHandler(NewInitializer(factory, DefaultSlot, opts), nil)
}

// NewHandler returns a Handler serving initializer. A nil logger means slog.Default().
func NewHandler(initializer *Initializer, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := initializer.Options()

	index, err := RenderIndex(opts)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		initializer: initializer,
		mountDir:    strings.TrimPrefix(opts.MountPath, "/"),
		logger:      logger,
	}
	h.index.Store(&renderedIndex{title: opts.Title, page: index})
	if opts.AssetsDir != "" {
		h.assetFS = os.DirFS(opts.AssetsDir)
	}
	return h, nil
}

// MountPath returns the route prefix the handler expects, e.g. /docs.
func (h *Handler) MountPath() string {
	return "/" + h.mountDir
}

// SetTitleSource makes the index page title follow fn. The page is rendered
// again whenever fn returns a different title; an empty title keeps the
// configured one.
func (h *Handler) SetTitleSource(fn func() string) {
	h.titleFn.Store(&fn)
}

// indexPage returns the index for the current title.
func (h *Handler) indexPage() ([]byte, error) {
	cur := h.index.Load()
	fn := h.titleFn.Load()
	if fn == nil {
		return cur.page, nil
	}
	title := (*fn)()
	if title == "" {
		title = h.initializer.Options().Title
	}
	if title == cur.title {
		return cur.page, nil
	}

	opts := h.initializer.Options()
	opts.Title = title
	page, err := RenderIndex(opts)
	if err != nil {
		return nil, err
	}
	h.index.Store(&renderedIndex{title: title, page: page})
	return page, nil
}

// Initializer returns the initializer run for every page load.
func (h *Handler) Initializer() *Initializer {
	return h.initializer
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch target := h.resolveTarget(r.URL.Path); target {
	case "", indexFile:
		if target == "" && r.URL.Path != "" && !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		page, err := h.indexPage()
		if err != nil {
			h.logger.Error("viewer index render failed", "err", err)
			http.Error(w, "swagger: index not available", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	case initializerFile:
		handle, err := h.initializer.Bootstrap(LocationFromRequest(r))
		if err != nil {
			h.logger.Error("viewer bootstrap failed", "err", err)
			http.Error(w, "swagger: initializer not available", http.StatusInternalServerError)
			return
		}
		h.logger.Debug("viewer bootstrapped",
			"seq", handle.Seq,
			"spec_url", handle.Config.SpecURL)
		w.Header().Set("Content-Type", "application/javascript")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(handle.Script)
	default:
		if !h.serveAsset(w, target) {
			http.NotFound(w, r)
		}
	}
}

func (h *Handler) resolveTarget(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := path.Clean(raw)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}

	if h.mountDir != "" {
		if cleaned == h.mountDir {
			return ""
		}
		cleaned = strings.TrimPrefix(cleaned, h.mountDir+"/")
	}
	return cleaned
}

func (h *Handler) serveAsset(w http.ResponseWriter, name string) bool {
	if h.assetFS == nil || !fs.ValidPath(name) {
		return false
	}
	data, err := fs.ReadFile(h.assetFS, name)
	if err != nil {
		return false
	}

	if ctype := contentTypeFor(name); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	_, _ = w.Write(data)
	return true
}

// bundleContentTypes covers the file types shipped in swagger-ui-dist.
var bundleContentTypes = map[string]string{
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".map":  "application/json",
	".json": "application/json",
	".html": "text/html; charset=utf-8",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ctype, ok := bundleContentTypes[ext]; ok {
		return ctype
	}
	return mime.TypeByExtension(ext)
}
