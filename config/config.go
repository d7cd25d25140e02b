// Package config loads the runtime configuration from flags, SPECVIEW_*
// environment variables and an optional config file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/webasoo/specview/swagger"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "SPECVIEW"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the runtime configuration of the documentation server.
type Config struct {
	ListenAddr  string
	LogLevel    string
	LogFormat   string
	SpecFile    string
	StaticDir   string
	WatchSpec   bool
	LandingFile string
	CORSOrigins []string
	Viewer      Viewer
}

// Viewer holds the overrides of the viewer configuration.
type Viewer struct {
	SpecPath      string
	SpecURL       string
	DeepLinking   bool
	Layout        string
	Title         string
	BundleBaseURL string
	AssetsDir     string
}

// Options converts v into swagger.Options.
func (v Viewer) Options() swagger.Options {
	deepLinking := v.DeepLinking
	return swagger.Options{
		SpecPath:      v.SpecPath,
		SpecURL:       v.SpecURL,
		DeepLinking:   &deepLinking,
		Layout:        v.Layout,
		Title:         v.Title,
		BundleBaseURL: v.BundleBaseURL,
		AssetsDir:     v.AssetsDir,
	}
}

// flagKeys maps flag names to viper keys. Keys use underscores and dots so
// that they match the env var suffix after stripping the SPECVIEW_ prefix.
var flagKeys = map[string]string{
	"listen":          "listen_addr",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"spec-file":       "spec_file",
	"static-dir":      "static_dir",
	"watch-spec":      "watch_spec",
	"landing-file":    "landing_file",
	"cors-origins":    "cors_origins",
	"spec-path":       "viewer.spec_path",
	"spec-url":        "viewer.spec_url",
	"deep-linking":    "viewer.deep_linking",
	"layout":          "viewer.layout",
	"title":           "viewer.title",
	"bundle-base-url": "viewer.bundle_base_url",
	"assets-dir":      "viewer.assets_dir",
}

// RegisterFlags adds the configuration flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("listen", "l", ":8080", "address to listen on")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "text", "log output format (text, json)")
	fs.String("spec-file", "./static/openapi.yaml", "path to the OpenAPI document")
	fs.String("static-dir", "./static", "directory served under /static/")
	fs.Bool("watch-spec", true, "reload the OpenAPI document when it changes on disk")
	fs.String("landing-file", "", "optional markdown file rendered on the landing page")
	fs.String("cors-origins", "*", "comma-separated list of allowed CORS origins")
	fs.String("spec-path", swagger.DefaultSpecPath, "path of the OpenAPI document relative to the page origin")
	fs.String("spec-url", "", "absolute OpenAPI document URL; overrides origin derivation")
	fs.Bool("deep-linking", true, "enable deep linking in the viewer")
	fs.String("layout", swagger.DefaultLayout, "viewer layout")
	fs.String("title", "", "viewer page title (defaults to the document title)")
	fs.String("bundle-base-url", swagger.DefaultBundleBaseURL, "base URL of the swagger-ui-dist bundle")
	fs.String("assets-dir", "", "local swagger-ui-dist directory; overrides bundle-base-url")
}

// NewViper returns a viper instance bound to the flags registered by
// RegisterFlags and to SPECVIEW_* environment variables. A non-empty
// configFile is read as well; its format follows the file extension.
func NewViper(fs *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			return nil, fmt.Errorf("config: flag %q is not registered", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("config: bind flag %q: %w", name, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", configFile, err)
		}
	}
	return v, nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ListenAddr:  v.GetString("listen_addr"),
		LogLevel:    v.GetString("log_level"),
		LogFormat:   strings.ToLower(v.GetString("log_format")),
		SpecFile:    v.GetString("spec_file"),
		StaticDir:   v.GetString("static_dir"),
		WatchSpec:   v.GetBool("watch_spec"),
		LandingFile: v.GetString("landing_file"),
		CORSOrigins: stringList(v, "cors_origins"),
		Viewer: Viewer{
			SpecPath:      v.GetString("viewer.spec_path"),
			SpecURL:       v.GetString("viewer.spec_url"),
			DeepLinking:   v.GetBool("viewer.deep_linking"),
			Layout:        v.GetString("viewer.layout"),
			Title:         v.GetString("viewer.title"),
			BundleBaseURL: v.GetString("viewer.bundle_base_url"),
			AssetsDir:     v.GetString("viewer.assets_dir"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found in c.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if strings.TrimSpace(c.ListenAddr) == "" {
		invalid("listen_addr must not be empty")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		invalid("log_format %q must be text or json", c.LogFormat)
	}
	if strings.TrimSpace(c.SpecFile) == "" {
		invalid("spec_file must not be empty")
	}
	if !strings.HasPrefix(c.Viewer.SpecPath, "/") {
		invalid("viewer.spec_path %q must start with /", c.Viewer.SpecPath)
	}
	if c.Viewer.SpecURL != "" {
		u, err := url.Parse(c.Viewer.SpecURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			invalid("viewer.spec_url %q must be an absolute URL", c.Viewer.SpecURL)
		}
	}
	if strings.TrimSpace(c.Viewer.Layout) == "" {
		invalid("viewer.layout must not be empty")
	}
	return errors.Join(errs...)
}

// stringList accepts both a YAML list and a comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return splitList(raw)
	}
	return v.GetStringSlice(key)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
