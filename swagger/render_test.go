package swagger

import (
	"strings"
	"testing"
)

func TestScriptFactoryDerivesURLInBrowser(t *testing.T) {
	factory := NewScriptFactory(Options{}, false)
	cfg := NewViewerConfiguration("http://localhost:8080/static/openapi.yaml", Options{})

	handle, err := factory.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	script := string(handle.Script)

	for _, want := range []string{
		"window.onload = function () {",
		`var specUrl = window.location.protocol + "//" + window.location.host + "/static/openapi.yaml";`,
		"window.ui = SwaggerUIBundle({",
		"url: specUrl,",
		`dom_id: "#swagger-ui",`,
		"deepLinking: true,",
		"presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],",
		"plugins: [SwaggerUIBundle.plugins.DownloadUrl],",
		`layout: "StandaloneLayout",`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q\n%s", want, script)
		}
	}
	if strings.Contains(script, "localhost:8080") {
		t.Errorf("browser-derived script must not embed the server-side origin\n%s", script)
	}
}

func TestScriptFactoryEmbedsURL(t *testing.T) {
	factory := NewScriptFactory(Options{}, true)
	cfg := NewViewerConfiguration("https://docs.example.com/static/openapi.yaml", Options{})

	handle, err := factory.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := `var specUrl = "https://docs.example.com/static/openapi.yaml";`
	if !strings.Contains(string(handle.Script), want) {
		t.Fatalf("script missing %q\n%s", want, handle.Script)
	}
	if strings.Contains(string(handle.Script), "window.location") {
		t.Fatalf("embedded script should not read window.location\n%s", handle.Script)
	}
}

func TestScriptFactorySequence(t *testing.T) {
	factory := NewScriptFactory(Options{}, false)
	cfg := NewViewerConfiguration("http://a/static/openapi.yaml", Options{})

	for want := uint64(1); want <= 3; want++ {
		handle, err := factory.New(cfg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if handle.Seq != want {
			t.Fatalf("expected seq %d, got %d", want, handle.Seq)
		}
	}
}

func TestRenderIndex(t *testing.T) {
	page, err := RenderIndex(Options{Title: "Pets API"})
	if err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"<title>Pets API</title>",
		`<div id="swagger-ui"></div>`,
		DefaultBundleBaseURL + "/swagger-ui-bundle.js",
		DefaultBundleBaseURL + "/swagger-ui-standalone-preset.js",
		`<script src="swagger-initializer.js"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index missing %q", want)
		}
	}

	local, err := RenderIndex(Options{AssetsDir: "testdata/dist"})
	if err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	if !strings.Contains(string(local), `src="./swagger-ui-bundle.js"`) {
		t.Fatalf("local assets should be referenced relatively\n%s", local)
	}
}
