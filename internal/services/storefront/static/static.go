package static

import "embed"

// FS exposes storefront static assets for HTTP serving.
//
//go:embed *.css *.svg
var FS embed.FS

// NoImage is the placeholder served for products without an image.
const NoImage = "noimage.svg"
