package storyglyph

import (
	"github.com/storyglyph/storyglyph/atlas"
	"github.com/storyglyph/storyglyph/gpucore"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default: best registered backend, default style.
//	r, err := storyglyph.NewRenderer(fontData, 1920, 1080)
//
//	// Custom backend and theme:
//	r, err := storyglyph.NewRenderer(fontData, 1920, 1080,
//	    storyglyph.WithBackend(myBackend),
//	    storyglyph.WithStyle(theme))
type Option func(*rendererOptions)

type rendererOptions struct {
	backend     gpucore.Backend
	style       Style
	atlasConfig atlas.Config
	maxVertices int
	autoScroll  bool
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		style:       DefaultStyle(),
		atlasConfig: atlas.DefaultConfig(),
		maxVertices: DefaultMaxVertices,
		autoScroll:  true,
	}
}

// WithBackend injects a rendering backend. When unset the best registered
// backend is used (native when compiled in, software otherwise).
func WithBackend(b gpucore.Backend) Option {
	return func(o *rendererOptions) {
		o.backend = b
	}
}

// WithStyle sets the panel style. See DefaultStyle and LoadTheme.
func WithStyle(s Style) Option {
	return func(o *rendererOptions) {
		o.style = s
	}
}

// WithAtlasConfig overrides atlas construction parameters (size, font
// size, codepoint set).
func WithAtlasConfig(cfg atlas.Config) Option {
	return func(o *rendererOptions) {
		o.atlasConfig = cfg
	}
}

// WithMaxVertices caps the per-frame vertex stream. Rebuilds never exceed
// the cap; quads past it are dropped and counted.
func WithMaxVertices(n int) Option {
	return func(o *rendererOptions) {
		if n > 0 {
			o.maxVertices = n
		}
	}
}

// WithAutoScroll enables or disables automatic scrolling toward new
// content. Enabled by default.
func WithAutoScroll(enabled bool) Option {
	return func(o *rendererOptions) {
		o.autoScroll = enabled
	}
}
