package fiberswagger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/webasoo/specview/swagger"
)

func TestRegisterServesViewer(t *testing.T) {
	slot := &swagger.Slot{}
	opts := swagger.Options{SpecURL: "https://cdn.example.com/openapi.yaml"}
	initializer := swagger.NewInitializer(swagger.NewScriptFactory(opts, true), slot, opts)
	h, err := swagger.NewHandler(initializer, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	app := fiber.New()
	Register(app, h)

	resp, err := app.Test(httptest.NewRequest("GET", "/docs/swagger-initializer.js", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `var specUrl = "https://cdn.example.com/openapi.yaml";`) {
		t.Fatalf("unexpected body:\n%s", body)
	}
	if slot.Load() == nil {
		t.Fatalf("expected a handle in the slot")
	}
}

func TestRegisterServesIndex(t *testing.T) {
	app := fiber.New()
	if _, err := RegisterWithOptions(app, swagger.Options{Title: "Fiber Docs"}); err != nil {
		t.Fatalf("RegisterWithOptions: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/docs/index.html", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<title>Fiber Docs</title>") {
		t.Fatalf("unexpected response %d:\n%s", resp.StatusCode, body)
	}
}
