package fiberswagger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/webasoo/specview/swagger"
)

// Handler returns a Fiber handler serving the viewer.
func Handler(h *swagger.Handler) fiber.Handler {
	return adaptor.HTTPHandler(h)
}

// Register attaches GET handlers for the mount path and mount path/* to app.
func Register(app *fiber.App, h *swagger.Handler) {
	wrapped := Handler(h)
	mount := h.MountPath()
	app.Get(mount, wrapped)
	app.Get(mount+"/*", wrapped)
}

// RegisterWithOptions builds a viewer handler from opts and mounts it on app.
func RegisterWithOptions(app *fiber.App, opts swagger.Options) (*swagger.Handler, error) {
	h, err := swagger.New(opts)
	if err != nil {
		return nil, err
	}
	Register(app, h)
	return h, nil
}
