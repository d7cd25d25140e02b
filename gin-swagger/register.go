package ginswagger

import (
	"github.com/gin-gonic/gin"

	"github.com/webasoo/specview/swagger"
)

// Handler adapts the viewer handler to Gin.
func Handler(h *swagger.Handler) gin.HandlerFunc {
	return gin.WrapH(h)
}

// Register attaches GET handlers for the mount path and mount path/*any.
func Register(router gin.IRoutes, h *swagger.Handler) {
	handler := Handler(h)
	mount := h.MountPath()
	router.GET(mount, handler)
	router.GET(mount+"/*any", handler)
}

// RegisterWithOptions builds a viewer handler from opts and mounts it on a
// Gin router.
func RegisterWithOptions(router gin.IRoutes, opts swagger.Options) (*swagger.Handler, error) {
	h, err := swagger.New(opts)
	if err != nil {
		return nil, err
	}
	Register(router, h)
	return h, nil
}
