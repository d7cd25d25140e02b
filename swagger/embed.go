package swagger

import "embed"

// assets holds the viewer page and the initializer script templates. The
// Swagger UI bundle itself is loaded from Options.BundleBaseURL or served from
// Options.AssetsDir.
//
//go:embed assets/*
var assets embed.FS
