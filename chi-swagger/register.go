package chiswagger

import (
	"github.com/go-chi/chi/v5"

	"github.com/webasoo/specview/swagger"
)

// Register mounts h under its mount path (e.g. /docs and /docs/*) on the
// provided chi router.
func Register(router chi.Router, h *swagger.Handler) {
	mount := h.MountPath()
	router.Handle(mount, h)
	router.Handle(mount+"/*", h)
}

// RegisterWithOptions builds a viewer handler from opts and mounts it.
// Handles land in swagger.DefaultSlot.
func RegisterWithOptions(router chi.Router, opts swagger.Options) (*swagger.Handler, error) {
	h, err := swagger.New(opts)
	if err != nil {
		return nil, err
	}
	Register(router, h)
	return h, nil
}
