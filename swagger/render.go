package swagger

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"sync/atomic"
	"text/template"
	"time"
)

var (
	scriptTemplate = template.Must(template.New("swagger-initializer.js.tmpl").
			Funcs(template.FuncMap{"jsString": jsString}).
			ParseFS(assets, "assets/swagger-initializer.js.tmpl"))

	indexTemplate = htmltemplate.Must(htmltemplate.ParseFS(assets, "assets/index.html.tmpl"))
)

// ScriptFactory is the default Factory. It renders swagger-initializer.js
// for the configuration it receives.
type ScriptFactory struct {
	specPath string
	embedURL bool
	seq      atomic.Uint64
	now      func() time.Time
}

// NewScriptFactory returns a ScriptFactory. With embedURL the script carries
// the configured SpecURL literally; otherwise it derives the URL in the
// browser from window.location and the spec path in opts.
func NewScriptFactory(opts Options, embedURL bool) *ScriptFactory {
	opts = opts.withDefaults()
	return &ScriptFactory{
		specPath: opts.SpecPath,
		embedURL: embedURL,
		now:      time.Now,
	}
}

type scriptData struct {
	Config   ViewerConfiguration
	SpecPath string
	EmbedURL bool
}

func (d scriptData) Presets() string {
	names := make([]string, len(d.Config.Presets))
	for i, p := range d.Config.Presets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func (d scriptData) Plugins() string {
	names := make([]string, len(d.Config.Plugins))
	for i, p := range d.Config.Plugins {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// New renders the initializer script for cfg.
func (f *ScriptFactory) New(cfg ViewerConfiguration) (*Handle, error) {
	var buf bytes.Buffer
	data := scriptData{
		Config:   cfg,
		SpecPath: f.specPath,
		EmbedURL: f.embedURL,
	}
	if err := scriptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("swagger: render initializer: %w", err)
	}
	return &Handle{
		Seq:       f.seq.Add(1),
		CreatedAt: f.now(),
		Config:    cfg,
		Script:    buf.Bytes(),
	}, nil
}

// RenderIndex renders the viewer index page.
func RenderIndex(opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	data := struct {
		Title         string
		BundleBaseURL string
		ElementID     string
	}{
		Title:         opts.Title,
		BundleBaseURL: opts.BundleBaseURL,
		ElementID:     strings.TrimPrefix(DefaultDOMTargetID, "#"),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("swagger: render index: %w", err)
	}
	return buf.Bytes(), nil
}

func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
