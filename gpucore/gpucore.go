// Package gpucore defines the contract between the dialogue renderer and
// its rendering backends.
//
// The renderer produces two upload streams per lifetime: the glyph atlas
// once at startup, and the vertex stream on every rebuild. A backend turns
// those into draws. Implementations live in backend/ (CPU compositing) and
// backend/native/ (wgpu).
package gpucore

import "errors"

// ErrNotInitialized is returned by backend operations before a successful
// Init.
var ErrNotInitialized = errors.New("gpucore: backend not initialized")

// Backend renders the dialogue panel's vertex stream.
//
// Backends are single-threaded like the renderer that owns them: Init
// first, uploads and draws from the frame loop, Close last.
type Backend interface {
	// Name identifies the backend ("native", "software").
	Name() string

	// Init prepares resources for a fixed viewport size in pixels.
	// Viewport changes require Close and a fresh Init.
	Init(width, height int) error

	// UploadAtlas stores the square single-channel coverage bitmap.
	// pix holds size*size bytes, row-major. Called once after Init.
	UploadAtlas(pix []byte, size int) error

	// UploadVertices replaces the frame's vertex stream. data is count
	// vertices of 8 float32 each (x, y, u, v, r, g, b, a); a nil data
	// with count 0 clears the stream.
	UploadVertices(data []byte, count int) error

	// Draw renders the current vertex stream into the target pass.
	// The pass type is backend-specific: a hal render pass encoder for
	// the native backend, an *image.RGBA for the software backend.
	Draw(pass any) error

	// Close releases all resources. Safe to call more than once.
	Close() error
}
