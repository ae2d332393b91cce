//go:build !nogpu

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/storyglyph/storyglyph/backend"
	"github.com/storyglyph/storyglyph/gpucore"
)

// ErrNoHalAccess is returned when a provider cannot hand out raw hal
// handles.
var ErrNoHalAccess = errors.New("native: provider does not expose hal device/queue")

// halProvider is the optional provider extension that exposes raw hal
// handles. gogpu's context provider implements it.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// FromProvider builds a Backend on the device owned by a host engine. The
// provider must expose hal handles through HalDevice() and HalQueue(); the
// pipeline targets the provider's surface format.
//
// The provider decides readiness: call this only once the host reports its
// GPU context usable.
func FromProvider(provider gpucontext.DeviceProvider) (*Backend, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrNoHalAccess)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalAccess)
	}
	return NewBackend(device, queue, provider.SurfaceFormat()), nil
}

// RegisterProvider makes the native backend available through the backend
// registry, bound to the given provider. After a successful call,
// backend.Default() prefers native over software.
func RegisterProvider(provider gpucontext.DeviceProvider) error {
	if _, err := FromProvider(provider); err != nil {
		return err
	}
	backend.Register(backend.Native, func() gpucore.Backend {
		b, err := FromProvider(provider)
		if err != nil {
			return nil
		}
		return b
	})
	return nil
}
