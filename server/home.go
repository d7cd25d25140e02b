package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

type homeData struct {
	Title      string
	APIVersion string
	OpenAPI    string
	Version    string
	DocsPath   string
	SpecPath   string
	Landing    template.HTML
}

// renderLanding converts the markdown landing file to HTML. The file is
// trusted deployment input, so raw HTML inside it is kept.
func renderLanding(path string) (template.HTML, error) {
	if path == "" {
		return "", nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("server: read landing file %q: %w", path, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("server: render landing file %q: %w", path, err)
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	info := s.store.Info()
	data := homeData{
		Title:      s.title(),
		APIVersion: info.Version,
		OpenAPI:    info.OpenAPI,
		Version:    s.version,
		DocsPath:   s.viewer.MountPath(),
		SpecPath:   s.cfg.Viewer.SpecPath,
		Landing:    s.landing,
	}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render home page", slog.String("error", err.Error()))
		renderErrorJSON(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// title prefers the configured title, then the document title.
func (s *Server) title() string {
	if s.cfg.Viewer.Title != "" {
		return s.cfg.Viewer.Title
	}
	if title := s.store.Info().Title; title != "" {
		return title
	}
	return "API Documentation"
}
