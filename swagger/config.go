package swagger

import "strings"

const (
	// DefaultSpecPath is where the specification document is expected
	// relative to the page origin.
	DefaultSpecPath      = "/static/openapi.yaml"
	DefaultDOMTargetID   = "#swagger-ui"
	DefaultLayout        = "StandaloneLayout"
	DefaultTitle         = "Swagger UI"
	DefaultMountPath     = "/docs"
	DefaultBundleBaseURL = "https://unpkg.com/swagger-ui-dist@5.17.14"
)

// Preset is a JavaScript expression naming a capability bundle exported by
// the Swagger UI bundle.
type Preset string

const (
	PresetAPIs       Preset = "SwaggerUIBundle.presets.apis"
	PresetStandalone Preset = "SwaggerUIStandalonePreset"
)

// Plugin is a JavaScript expression naming a Swagger UI plugin.
type Plugin string

const PluginDownloadURL Plugin = "SwaggerUIBundle.plugins.DownloadUrl"

// ViewerConfiguration is the set of options handed to the viewer factory.
// A fresh value is built for every page load and never mutated afterwards.
type ViewerConfiguration struct {
	SpecURL     string   `json:"specUrl"`
	DOMTargetID string   `json:"domTargetId"`
	DeepLinking bool     `json:"deepLinking"`
	Presets     []Preset `json:"presets"`
	Plugins     []Plugin `json:"plugins"`
	Layout      string   `json:"layout"`
}

// Options holds deployment overrides for the viewer. All fields are
// optional; zero values fall back to the defaults above.
type Options struct {
	SpecPath      string // path appended to the page origin; defaults to DefaultSpecPath
	SpecURL       string // absolute document URL; disables origin derivation when set
	DeepLinking   *bool  // defaults to true
	Layout        string // top-level layout template; defaults to StandaloneLayout
	Title         string // page title of the viewer index
	MountPath     string // route prefix of the viewer; defaults to /docs
	BundleBaseURL string // base URL of swagger-ui-dist; defaults to the public CDN
	AssetsDir     string // local swagger-ui-dist directory served under MountPath
}

// withDefaults returns a copy of o with every empty field filled in.
func (o Options) withDefaults() Options {
	d := o
	if d.SpecPath == "" {
		d.SpecPath = DefaultSpecPath
	}
	if d.DeepLinking == nil {
		enabled := true
		d.DeepLinking = &enabled
	}
	if d.Layout == "" {
		d.Layout = DefaultLayout
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.MountPath == "" {
		d.MountPath = DefaultMountPath
	}
	d.MountPath = "/" + strings.Trim(d.MountPath, "/")
	switch {
	case d.AssetsDir != "":
		d.BundleBaseURL = "."
	case d.BundleBaseURL == "":
		d.BundleBaseURL = DefaultBundleBaseURL
	}
	d.BundleBaseURL = strings.TrimSuffix(d.BundleBaseURL, "/")
	return d
}

// NewViewerConfiguration builds the configuration passed to the viewer
// factory for the given specification URL.
func NewViewerConfiguration(specURL string, opts Options) ViewerConfiguration {
	opts = opts.withDefaults()
	return ViewerConfiguration{
		SpecURL:     specURL,
		DOMTargetID: DefaultDOMTargetID,
		DeepLinking: *opts.DeepLinking,
		Presets:     []Preset{PresetAPIs, PresetStandalone},
		Plugins:     []Plugin{PluginDownloadURL},
		Layout:      opts.Layout,
	}
}
