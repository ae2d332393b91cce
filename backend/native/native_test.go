//go:build !nogpu

package native

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestPanelShaderEmbedded(t *testing.T) {
	if panelShaderSource == "" {
		t.Fatal("panel shader source is empty")
	}
	for _, entry := range []string{"vs_main", "fs_main", "screen_size", "discard"} {
		if !strings.Contains(panelShaderSource, entry) {
			t.Errorf("shader source missing %q", entry)
		}
	}
}

func TestPanelVertexLayout(t *testing.T) {
	layouts := panelVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("layout count = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != vertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, vertexStride)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("attribute count = %d, want 3", len(l.Attributes))
	}
	wantOffsets := []uint64{0, 8, 16}
	for i, a := range l.Attributes {
		if a.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, a.Offset, wantOffsets[i])
		}
		if a.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location = %d, want %d", i, a.ShaderLocation, i)
		}
	}
}

func TestInitRequiresDevice(t *testing.T) {
	b := NewBackend(nil, nil, gputypes.TextureFormatBGRA8Unorm)
	if err := b.Init(800, 600); !errors.Is(err, ErrNilDevice) {
		t.Errorf("Init without device: err = %v, want ErrNilDevice", err)
	}
	if err := b.UploadVertices(nil, 0); err == nil {
		t.Error("upload before init should fail")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close on empty backend: %v", err)
	}
}

// bareProvider satisfies gpucontext.DeviceProvider but exposes no hal
// handles.
type bareProvider struct{}

func (bareProvider) Device() gpucontext.Device             { return nil }
func (bareProvider) Queue() gpucontext.Queue               { return nil }
func (bareProvider) Adapter() gpucontext.Adapter           { return nil }
func (bareProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (bareProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestFromProviderRequiresHalAccess(t *testing.T) {
	if _, err := FromProvider(nil); !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("nil provider: err = %v, want ErrNoHalAccess", err)
	}
	if _, err := FromProvider(bareProvider{}); !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("bare provider: err = %v, want ErrNoHalAccess", err)
	}
	if err := RegisterProvider(bareProvider{}); !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("RegisterProvider: err = %v, want ErrNoHalAccess", err)
	}
}
