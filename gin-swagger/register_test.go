package ginswagger

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/webasoo/specview/swagger"
)

func TestRegisterServesViewer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if _, err := RegisterWithOptions(router, swagger.Options{}); err != nil {
		t.Fatalf("RegisterWithOptions: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("index: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<div id="swagger-ui"></div>`) {
		t.Fatalf("index: unexpected body:\n%s", rec.Body.String())
	}

	req := httptest.NewRequest("GET", "http://docs.example.com/docs/swagger-initializer.js", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("initializer: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `layout: "StandaloneLayout"`) {
		t.Fatalf("initializer: unexpected body:\n%s", rec.Body.String())
	}

	handle := swagger.DefaultSlot.Load()
	if handle == nil || handle.Config.SpecURL != "http://docs.example.com/static/openapi.yaml" {
		t.Fatalf("unexpected handle %+v", handle)
	}
}
