// package crt implements the CRT display postprocess effect: barrel distortion,
// scanline modulation, vignette, per-channel chromatic aberration, and a
// deterministic glitch pulse. The per-pixel math lives here as pure float32
// functions that mirror the WGSL fragment shader exactly, so the same frame can
// be produced on the GPU (via the renderer) or on the CPU (via the Compositor)
// and the two stay verifiably in sync.
//
// All effect functions are stateless. Anything time-varying takes the global
// time scalar explicitly, and all pseudo-randomness goes through Hash, a fixed
// deterministic mapping — the same time input always reproduces the same glitch
// pattern, which is what makes recorded output match live playback.
package crt

import (
	"github.com/chewxy/math32"
)

const (
	// DefaultCurvature is the reference screen curvature. Higher values flatten
	// the simulated glass, lower values make it more spherical.
	DefaultCurvature float32 = 3.0

	// StaticAberration is the fixed chromatic aberration intensity used when
	// dynamic effects are disabled.
	StaticAberration float32 = 0.001

	// GlitchAberration is the aberration intensity snapped to during a glitch pulse.
	GlitchAberration float32 = 0.002

	// GlitchThreshold is the hash cutoff for triggering a glitch. The glitch
	// clock ticks at 10 steps per second, so a pulse fires on average once per
	// twenty half-second steps.
	GlitchThreshold float32 = 0.05

	// StaticScanlineOpacity is the scanline exponent used when dynamic effects
	// are disabled.
	StaticScanlineOpacity float32 = 0.5

	// StaticBrightnessBoost is the composite brightness multiplier used when
	// dynamic effects are disabled.
	StaticBrightnessBoost float32 = 1.5

	// baseAberration and aberrationSwing drive the smooth oscillation of the
	// dynamic aberration intensity between glitch pulses.
	baseAberration  float32 = 0.0008
	aberrationSwing float32 = 0.0003

	// glitchRate and flickerRate quantize time for the glitch trigger and the
	// brightness flicker. The two effects share Hash but tick at different rates
	// so they never lock phase.
	glitchRate  float32 = 10.0
	flickerRate float32 = 20.0

	// hashScale and hashMagnitude are the constants of the canonical
	// fract(sin(x*k1)*k2) hash. They are arbitrary but fixed: changing them
	// changes every recorded glitch pattern.
	hashScale     float32 = 12.9898
	hashMagnitude float32 = 43758.5453
)

// Aberration sampling directions per color channel. Each channel is displaced
// along its own fixed direction, scaled by the frame's aberration intensity.
var (
	redOffsetDir   = [2]float32{1, 0}
	greenOffsetDir = [2]float32{-1, 0}
	blueOffsetDir  = [2]float32{0, 1}
)

// Params holds the tunable constants of the postprocess effect. The zero value
// is not useful; obtain defaults from DefaultParams.
type Params struct {
	// Curvature controls the barrel distortion amount (see DefaultCurvature).
	Curvature float32

	// Dynamic enables the time-varying extensions: glitch pulses, brightness
	// flicker, and scanline shimmer. When false the effect is fully
	// time-invariant and the time scalar is ignored.
	Dynamic bool
}

// DefaultParams returns the reference effect parameters with dynamic effects enabled.
//
// Returns:
//   - Params: curvature 3.0, dynamic effects on
func DefaultParams() Params {
	return Params{
		Curvature: DefaultCurvature,
		Dynamic:   true,
	}
}

// Hash maps a scalar to [0, 1) deterministically using the fract(sin(x*k1)*k2)
// construction. It is a pure function, not a stateful RNG: the glitch trigger
// and brightness flicker must reproduce exactly for a given time input.
//
// Parameters:
//   - x: input scalar (typically a quantized time step)
//
// Returns:
//   - float32: a pseudo-random value in [0, 1)
func Hash(x float32) float32 {
	v := math32.Sin(x*hashScale) * hashMagnitude
	return v - math32.Floor(v)
}

// DistortUV remaps a UV coordinate to simulate a curved CRT screen. The input
// is remapped to [-1, 1], pushed outward proportionally to the squared distance
// from the opposite axis, and remapped back to [0, 1]. The center (0.5, 0.5)
// is a fixed point; coordinates near the corners land outside [0, 1]² — that
// out-of-range region represents the unseen area beyond the curved glass and
// is blacked out by the caller (see InBounds).
//
// Parameters:
//   - u, v: input UV coordinate in [0, 1]²
//   - curvature: screen curvature constant (see DefaultCurvature)
//
// Returns:
//   - float32: distorted u, possibly outside [0, 1]
//   - float32: distorted v, possibly outside [0, 1]
func DistortUV(u, v, curvature float32) (float32, float32) {
	cx := u*2 - 1
	cy := v*2 - 1
	// offset = |c.yx| / curvature — each axis bends by the other's magnitude
	ox := math32.Abs(cy) / curvature
	oy := math32.Abs(cx) / curvature
	cx += cx * ox * ox
	cy += cy * oy * oy
	return cx*0.5 + 0.5, cy*0.5 + 0.5
}

// InBounds reports whether a distorted UV still addresses the visible [0, 1]²
// square. Out-of-range coordinates must be replaced with opaque black rather
// than wrapped or clamped, or the screen border shows seams.
//
// Parameters:
//   - u, v: the distorted UV coordinate
//
// Returns:
//   - bool: true if both components lie within [0, 1]
func InBounds(u, v float32) bool {
	return u >= 0 && u <= 1 && v >= 0 && v <= 1
}

// AberrationIntensity returns the chromatic aberration strength for a frame.
// Static: the fixed reference intensity. Dynamic: oscillates smoothly with
// time, except when the glitch trigger fires — a hash of the quantized time
// below GlitchThreshold — which snaps the intensity to GlitchAberration for
// the duration of that step.
//
// Parameters:
//   - t: global time in seconds
//   - dynamic: whether time-varying effects are enabled
//
// Returns:
//   - float32: the UV offset scale applied per color channel
func AberrationIntensity(t float32, dynamic bool) float32 {
	if !dynamic {
		return StaticAberration
	}
	if Hash(math32.Round(t*glitchRate)) < GlitchThreshold {
		return GlitchAberration
	}
	s := math32.Sin(t * math32.Pi / 4)
	return baseAberration + aberrationSwing*s*s
}

// ChannelOffsets returns the per-channel UV displacement vectors for the given
// aberration intensity, ordered red, green, blue. Each channel samples the
// scene at its own offset and contributes only its matching component.
//
// Parameters:
//   - intensity: the aberration intensity for this frame
//
// Returns:
//   - [3][2]float32: UV offsets for the red, green, and blue samples
func ChannelOffsets(intensity float32) [3][2]float32 {
	return [3][2]float32{
		{redOffsetDir[0] * intensity, redOffsetDir[1] * intensity},
		{greenOffsetDir[0] * intensity, greenOffsetDir[1] * intensity},
		{blueOffsetDir[0] * intensity, blueOffsetDir[1] * intensity},
	}
}

// ScanlineOpacity returns the scanline exponent for a pixel. Static: a
// constant. Dynamic: the exponent is modulated per column by the squared
// distance from the horizontal center, times a sine driven by time and the
// y-coordinate — scanline bands shimmer along the screen edges and stay still
// at the center. The result is strictly positive so Scanline never inverts.
//
// Parameters:
//   - u, v: the distorted UV coordinate of the pixel
//   - t: global time in seconds
//   - dynamic: whether time-varying effects are enabled
//
// Returns:
//   - float32: the exponent fed to Scanline, in (0, 1)
func ScanlineOpacity(u, v, t float32, dynamic bool) float32 {
	if !dynamic {
		return StaticScanlineOpacity
	}
	edge := 4 * (u - 0.5) * (u - 0.5)
	return 0.5 + 0.25*edge*math32.Sin(t*3+v*8)
}

// Scanline returns the horizontal-band brightness multiplier for a row. The
// base wave is a sine over the y-coordinate at the given vertical resolution,
// compressed into [0.1, 1.0], then raised to the opacity exponent. For any
// non-negative opacity the result stays within (0, 1].
//
// Parameters:
//   - v: the distorted y-coordinate in [0, 1]
//   - rows: the vertical resolution (scene height in texels)
//   - opacity: the exponent from ScanlineOpacity
//
// Returns:
//   - float32: brightness multiplier in (0, 1]
func Scanline(v, rows, opacity float32) float32 {
	base := (0.5*math32.Sin(v*rows*2*math32.Pi)+0.5)*0.9 + 0.1
	return math32.Pow(base, opacity)
}

// Vignette returns the corner-darkening multiplier for a pixel. The falloff is
// computed from the original, undistorted UV: zero at every edge, maximal at
// the center, scaled by screen width and clamped to [0, 1] so the final
// multiply can never invert or blow out colors.
//
// Parameters:
//   - u, v: the original (undistorted) UV coordinate
//   - width: the screen width in texels
//
// Returns:
//   - float32: brightness multiplier in [0, 1]
func Vignette(u, v, width float32) float32 {
	intensity := (width / 16) * u * v * (1 - u) * (1 - v)
	if intensity < 0 {
		return 0
	}
	if intensity > 1 {
		return 1
	}
	return intensity
}

// BrightnessBoost returns the composite brightness multiplier. Static: a
// constant. Dynamic: flickers deterministically via the shared Hash, quantized
// at twice the glitch rate so the flicker and glitch clocks never lock phase.
//
// Parameters:
//   - t: global time in seconds
//   - dynamic: whether time-varying effects are enabled
//
// Returns:
//   - float32: the brightness multiplier applied in the final composite
func BrightnessBoost(t float32, dynamic bool) float32 {
	if !dynamic {
		return StaticBrightnessBoost
	}
	return StaticBrightnessBoost + 0.1*Hash(math32.Round(t*flickerRate))
}
