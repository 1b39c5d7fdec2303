package crt

import (
	"github.com/Carmen-Shannon/phosphor-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline cache keys for the two pipelines this package provides.
const (
	// PipelineKeyBlit identifies the textured blit pipeline: samples a bound
	// texture and writes it unmodified to the destination target.
	PipelineKeyBlit = "textured_blit"

	// PipelineKeyPostprocess identifies the CRT postprocess pipeline: consumes
	// the G-buffer and produces the final displayed frame.
	PipelineKeyPostprocess = "crt_postprocess"
)

// Bind group and binding slots shared between the WGSL sources and the Go-side
// resource wiring. The G-buffer texture and sampler sit at fixed slots in group
// 0; the time uniform has its own group so the host can rebind the G-buffer
// every frame without touching the uniform.
const (
	GBufferGroup          = 0
	GBufferTextureBinding = 0
	GBufferSamplerBinding = 1

	TimeGroup        = 1
	TimeBinding      = 0
	TimeUniformBytes = 16 // a single f32, padded: WebGL requires 16-byte buffer alignment
)

// texturedWGSL is the blit pipeline: attribute-driven vertices pass through to
// clip space and the fragment stage samples the bound texture unmodified.
const texturedWGSL = `
struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex_coords: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = vec4<f32>(in.position, 0.0, 1.0);
    out.tex_coords = in.tex_coords;
    return out;
}

@group(0) @binding(0) var t_color: texture_2d<f32>;
@group(0) @binding(1) var s_color: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(t_color, s_color, in.tex_coords);
}
`

// postprocessCommonWGSL holds the stages shared by both postprocess variants:
// the index-only fullscreen triangle vertex stage and the distortion/hash
// helpers. The fragment stage is appended per variant.
const postprocessCommonWGSL = `
struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOutput {
    var out: VertexOutput;
    let uv = vec2<f32>(f32((idx << 1u) & 2u), f32(idx & 2u));
    out.clip_position = vec4<f32>(uv.x * 2.0 - 1.0, -(uv.y * 2.0 - 1.0), 0.0, 1.0);
    out.uv = uv;
    return out;
}

@group(0) @binding(0) var gbuffer: texture_2d<f32>;
@group(0) @binding(1) var gbuffer_sampler: sampler;

const CURVATURE: f32 = 3.0;
const TAU: f32 = 6.283185307179586;

fn hash(x: f32) -> f32 {
    return fract(sin(x * 12.9898) * 43758.5453);
}

fn distort_uv(uv: vec2<f32>) -> vec2<f32> {
    let c = uv * 2.0 - 1.0;
    let offset = abs(c.yx) / CURVATURE;
    let d = c + c * offset * offset;
    return d * 0.5 + 0.5;
}

fn vignette(uv: vec2<f32>, width: f32) -> f32 {
    return clamp((width / 16.0) * uv.x * uv.y * (1.0 - uv.x) * (1.0 - uv.y), 0.0, 1.0);
}
`

// postprocessStaticWGSL is the time-invariant fragment stage: fixed aberration
// intensity, constant scanline opacity, constant brightness boost.
const postprocessStaticWGSL = postprocessCommonWGSL + `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let uv = distort_uv(in.uv);
    let dims = vec2<f32>(textureDimensions(gbuffer));

    let aberration = 0.001;
    // Samples happen unconditionally to keep textureSample in uniform control
    // flow; the out-of-bounds cutoff below discards the result.
    let r = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(1.0, 0.0) * aberration).r;
    let g = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(-1.0, 0.0) * aberration).g;
    let b = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(0.0, 1.0) * aberration).b;

    if uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0 {
        return vec4<f32>(0.0, 0.0, 0.0, 1.0);
    }

    let scan = pow((0.5 * sin(uv.y * dims.y * TAU) + 0.5) * 0.9 + 0.1, 0.5);
    let vig = vignette(in.uv, dims.x);
    return vec4<f32>(1.5 * scan * vig * vec3<f32>(r, g, b), 1.0);
}
`

// postprocessDynamicWGSL is the time-varying fragment stage: the aberration
// intensity oscillates and occasionally glitches, scanline bands shimmer along
// the screen edges, and the brightness flickers. All randomness is the
// deterministic hash over quantized time.
const postprocessDynamicWGSL = postprocessCommonWGSL + `
@group(1) @binding(0) var<uniform> time: f32;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let uv = distort_uv(in.uv);
    let dims = vec2<f32>(textureDimensions(gbuffer));

    var aberration = 0.0008 + 0.0003 * pow(sin(time * 0.7853981633974483), 2.0);
    if hash(round(time * 10.0)) < 0.05 {
        aberration = 0.002;
    }
    // Samples happen unconditionally to keep textureSample in uniform control
    // flow; the out-of-bounds cutoff below discards the result.
    let r = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(1.0, 0.0) * aberration).r;
    let g = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(-1.0, 0.0) * aberration).g;
    let b = textureSample(gbuffer, gbuffer_sampler, uv + vec2<f32>(0.0, 1.0) * aberration).b;

    if uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0 {
        return vec4<f32>(0.0, 0.0, 0.0, 1.0);
    }

    let edge = 4.0 * (uv.x - 0.5) * (uv.x - 0.5);
    let opacity = 0.5 + 0.25 * edge * sin(time * 3.0 + uv.y * 8.0);
    let scan = pow((0.5 * sin(uv.y * dims.y * TAU) + 0.5) * 0.9 + 0.1, opacity);

    let vig = vignette(in.uv, dims.x);
    let boost = 1.5 + 0.1 * hash(round(time * 20.0));
    return vec4<f32>(boost * scan * vig * vec3<f32>(r, g, b), 1.0);
}
`

// GBufferBindGroupLayout returns the layout descriptor for the scene texture
// binding shared by the blit and postprocess pipelines: one filterable 2D
// texture and one filtering sampler, fragment-visible, at fixed slots.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 layout
func GBufferBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "gbuffer binding",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    GBufferTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    GBufferSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// TimeBindGroupLayout returns the layout descriptor for the global time
// uniform used by the dynamic postprocess variant: a single fragment-visible
// uniform buffer holding one padded f32.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 1 layout
func TimeBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "postprocess uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    TimeBinding,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: TimeUniformBytes,
				},
			},
		},
	}
}

// BlitVertexLayout returns the vertex buffer layout for the blit pipeline:
// position (2×f32) and texcoord (2×f32) per vertex, tightly packed.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the single vertex buffer layout
func BlitVertexLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 4 * 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         wgpu.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: 0,
				},
				{
					Format:         wgpu.VertexFormatFloat32x2,
					Offset:         4 * 2,
					ShaderLocation: 1,
				},
			},
		},
	}
}

// BlitShaders builds the vertex and fragment shaders for the textured blit
// pipeline.
//
// Returns:
//   - shader.Shader: the vertex shader with the blit vertex layout
//   - shader.Shader: the fragment shader with the texture binding layout
func BlitShaders() (shader.Shader, shader.Shader) {
	vs := shader.NewShader("textured_vs", shader.ShaderTypeVertex, texturedWGSL,
		shader.WithVertexLayout(0, BlitVertexLayout()),
	)
	fs := shader.NewShader("textured_fs", shader.ShaderTypeFragment, texturedWGSL,
		shader.WithBindGroupLayout(GBufferGroup, GBufferBindGroupLayout()),
	)
	return vs, fs
}

// PostprocessShaders builds the vertex and fragment shaders for the CRT
// postprocess pipeline. The dynamic flag selects the time-varying variant,
// which adds the time uniform at group 1; the static variant binds only the
// G-buffer group.
//
// Parameters:
//   - dynamic: true for the time-varying variant, false for the static one
//
// Returns:
//   - shader.Shader: the fullscreen-triangle vertex shader (no vertex buffers)
//   - shader.Shader: the fragment shader with its bind group layouts
func PostprocessShaders(dynamic bool) (shader.Shader, shader.Shader) {
	source := postprocessStaticWGSL
	fsOpts := []shader.ShaderBuilderOption{
		shader.WithBindGroupLayout(GBufferGroup, GBufferBindGroupLayout()),
	}
	if dynamic {
		source = postprocessDynamicWGSL
		fsOpts = append(fsOpts, shader.WithBindGroupLayout(TimeGroup, TimeBindGroupLayout()))
	}
	vs := shader.NewShader("postprocess_vs", shader.ShaderTypeVertex, source)
	fs := shader.NewShader("postprocess_fs", shader.ShaderTypeFragment, source, fsOpts...)
	return vs, fs
}
