package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name for this shader.
//
// Parameters:
//   - name: the WGSL entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point on a shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the bind group layout descriptor for a group index.
//
// Parameters:
//   - group: the bind group index the descriptor applies to
//   - desc: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that stores the descriptor on a shader
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayout declares the vertex buffer layout for a buffer slot.
// Only meaningful on vertex shaders.
//
// Parameters:
//   - slot: the vertex buffer slot the layout applies to
//   - layout: the vertex buffer layout for the slot
//
// Returns:
//   - ShaderBuilderOption: a function that stores the layout on a shader
func WithVertexLayout(slot int, layout []wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[slot] = layout
	}
}
