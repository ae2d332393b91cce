package backend

import (
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/storyglyph/storyglyph/gpucore"
)

func init() {
	Register(Software, func() gpucore.Backend { return &SoftwareBackend{} })
}

// SoftwareBackend resolves the vertex stream against the atlas on the CPU.
// It exists for tests, headless tools, and machines without a usable GPU;
// output matches the native backend's blending (source-over, sub-0.01
// alpha discarded).
type SoftwareBackend struct {
	width  int
	height int
	inited bool

	atlas     []byte
	atlasSize int

	verts []float32 // 8 floats per vertex
}

// Name returns "software".
func (b *SoftwareBackend) Name() string { return Software }

// Init records the viewport size.
func (b *SoftwareBackend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software backend: bad viewport %dx%d", width, height)
	}
	b.width, b.height = width, height
	b.inited = true
	return nil
}

// UploadAtlas copies the coverage bitmap.
func (b *SoftwareBackend) UploadAtlas(pix []byte, size int) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	if len(pix) != size*size {
		return fmt.Errorf("software backend: atlas %d bytes for size %d", len(pix), size)
	}
	b.atlas = append(b.atlas[:0], pix...)
	b.atlasSize = size
	return nil
}

// UploadVertices copies the frame's vertex stream.
func (b *SoftwareBackend) UploadVertices(data []byte, count int) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	b.verts = b.verts[:0]
	if count == 0 {
		return nil
	}
	if len(data) < count*8*4 {
		return fmt.Errorf("software backend: %d bytes for %d vertices", len(data), count)
	}
	floats := unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), count*8)
	b.verts = append(b.verts, floats...)
	return nil
}

// Draw composites the vertex stream into pass, which must be an
// *image.RGBA. Quads are taken pairwise from the triangle stream; the
// renderer emits axis-aligned rectangles only, so each 6-vertex group is
// resolved from its top-left and bottom-right corners.
func (b *SoftwareBackend) Draw(pass any) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	img, ok := pass.(*image.RGBA)
	if !ok {
		return fmt.Errorf("software backend: draw target %T, want *image.RGBA", pass)
	}

	for i := 0; i+48 <= len(b.verts); i += 48 {
		tl := b.verts[i : i+8]
		br := b.verts[i+32 : i+40]
		b.blitQuad(img, tl, br)
	}
	return nil
}

func (b *SoftwareBackend) blitQuad(img *image.RGBA, tl, br []float32) {
	x0, y0, u0, v0 := float64(tl[0]), float64(tl[1]), float64(tl[2]), float64(tl[3])
	x1, y1, u1, v1 := float64(br[0]), float64(br[1]), float64(br[2]), float64(br[3])
	cr, cg, cb, ca := float64(tl[4]), float64(tl[5]), float64(tl[6]), float64(tl[7])
	if x1 <= x0 || y1 <= y0 {
		return
	}

	bounds := img.Bounds()
	ix0 := max(int(math.Floor(x0)), bounds.Min.X)
	iy0 := max(int(math.Floor(y0)), bounds.Min.Y)
	ix1 := min(int(math.Ceil(x1)), bounds.Max.X)
	iy1 := min(int(math.Ceil(y1)), bounds.Max.Y)

	for py := iy0; py < iy1; py++ {
		ty := (float64(py) + 0.5 - y0) / (y1 - y0)
		if ty < 0 || ty >= 1 {
			continue
		}
		for px := ix0; px < ix1; px++ {
			tx := (float64(px) + 0.5 - x0) / (x1 - x0)
			if tx < 0 || tx >= 1 {
				continue
			}
			cov := b.sample(u0+(u1-u0)*tx, v0+(v1-v0)*ty)
			alpha := ca * cov
			if alpha < 0.01 {
				continue
			}
			o := img.PixOffset(px, py)
			blend(img.Pix[o:o+4], cr, cg, cb, alpha)
		}
	}
}

// sample reads atlas coverage at texture coordinates (u, v), nearest
// neighbour, returning [0, 1].
func (b *SoftwareBackend) sample(u, v float64) float64 {
	if b.atlasSize == 0 {
		return 1
	}
	x := int(u * float64(b.atlasSize))
	y := int(v * float64(b.atlasSize))
	x = min(max(x, 0), b.atlasSize-1)
	y = min(max(y, 0), b.atlasSize-1)
	return float64(b.atlas[y*b.atlasSize+x]) / 255
}

// blend applies source-over with a straight-alpha source onto one RGBA8
// pixel.
func blend(dst []byte, r, g, b, a float64) {
	inv := 1 - a
	dst[0] = byte(clamp255(r*a*255 + float64(dst[0])*inv))
	dst[1] = byte(clamp255(g*a*255 + float64(dst[1])*inv))
	dst[2] = byte(clamp255(b*a*255 + float64(dst[2])*inv))
	dst[3] = byte(clamp255(a*255 + float64(dst[3])*inv))
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Close drops the uploaded data.
func (b *SoftwareBackend) Close() error {
	b.atlas = nil
	b.verts = nil
	b.inited = false
	return nil
}
