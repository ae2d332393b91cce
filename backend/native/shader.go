//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// compileToSPIRV compiles WGSL source to SPIR-V words. Going through SPIR-V
// keeps the shader usable on hal backends without a WGSL frontend.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule compiles the WGSL source and wraps it in a hal shader
// module, preferring the SPIR-V path and falling back to raw WGSL when the
// compiler is unavailable.
func createShaderModule(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	words, err := compileToSPIRV(wgslSource)
	if err == nil {
		return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  label,
			Source: hal.ShaderSource{SPIRV: words},
		})
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: wgslSource},
	})
}
