package crt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		for _, x := range []float32{0, 1, 7.5, 123.25, -42} {
			assert.Equal(t, Hash(x), Hash(x))
		}
	})

	t.Run("range", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := Hash(float32(i) * 0.37)
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}
	})
}

func TestDistortUV(t *testing.T) {
	t.Run("center is a fixed point", func(t *testing.T) {
		u, v := DistortUV(0.5, 0.5, DefaultCurvature)
		assert.Equal(t, float32(0.5), u)
		assert.Equal(t, float32(0.5), v)
	})

	t.Run("axis midpoints stay on their axis", func(t *testing.T) {
		// Along the horizontal center line cy is 0, so only u bends and only
		// by cy's magnitude, which is also 0.
		u, v := DistortUV(0, 0.5, DefaultCurvature)
		assert.Equal(t, float32(0), u)
		assert.Equal(t, float32(0.5), v)

		u, v = DistortUV(0.5, 1, DefaultCurvature)
		assert.Equal(t, float32(0.5), u)
		assert.Equal(t, float32(1), v)
	})

	t.Run("corners land outside the visible square", func(t *testing.T) {
		corners := [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
		for _, c := range corners {
			u, v := DistortUV(c[0], c[1], DefaultCurvature)
			assert.False(t, InBounds(u, v), "corner (%v, %v) distorted to (%v, %v)", c[0], c[1], u, v)
		}
	})

	t.Run("symmetric about the center", func(t *testing.T) {
		u1, v1 := DistortUV(0.25, 0.25, DefaultCurvature)
		u2, v2 := DistortUV(0.75, 0.75, DefaultCurvature)
		assert.InDelta(t, 1-u2, u1, 1e-6)
		assert.InDelta(t, 1-v2, v1, 1e-6)
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(1, 1))
	assert.True(t, InBounds(0.5, 0.5))
	assert.False(t, InBounds(-0.001, 0.5))
	assert.False(t, InBounds(0.5, 1.001))
}

func TestAberrationIntensity(t *testing.T) {
	t.Run("static ignores time", func(t *testing.T) {
		assert.Equal(t, StaticAberration, AberrationIntensity(0, false))
		assert.Equal(t, StaticAberration, AberrationIntensity(123.45, false))
	})

	t.Run("dynamic is deterministic and bounded", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			tt := float32(i) * 0.173
			a := AberrationIntensity(tt, true)
			assert.Equal(t, a, AberrationIntensity(tt, true))
			assert.GreaterOrEqual(t, a, float32(0.0008))
			assert.LessOrEqual(t, a, GlitchAberration)
		}
	})

	t.Run("glitch pulse snaps to the glitch intensity", func(t *testing.T) {
		// Scan for a time step whose hash is under the trigger threshold.
		found := false
		for i := 0; i < 10000 && !found; i++ {
			tt := float32(i) * 0.1
			if Hash(float32(i)) < GlitchThreshold {
				assert.Equal(t, GlitchAberration, AberrationIntensity(tt, true))
				found = true
			}
		}
		require.True(t, found, "no glitch step found in scan range")
	})
}

func TestChannelOffsets(t *testing.T) {
	offsets := ChannelOffsets(0.002)
	assert.Equal(t, [2]float32{0.002, 0}, offsets[0])
	assert.Equal(t, [2]float32{-0.002, 0}, offsets[1])
	assert.Equal(t, [2]float32{0, 0.002}, offsets[2])
}

func TestScanlineOpacity(t *testing.T) {
	t.Run("static is the reference constant", func(t *testing.T) {
		assert.Equal(t, StaticScanlineOpacity, ScanlineOpacity(0.2, 0.8, 99, false))
	})

	t.Run("center column does not shimmer", func(t *testing.T) {
		// edge = 4*(u-0.5)^2 vanishes at u = 0.5, so the opacity is fixed
		// there no matter the time.
		for _, tt := range []float32{0, 1.5, 30} {
			assert.Equal(t, float32(0.5), ScanlineOpacity(0.5, 0.3, tt, true))
		}
	})

	t.Run("dynamic stays strictly positive", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			u := float32(i%100) / 100
			v := float32(i%73) / 73
			op := ScanlineOpacity(u, v, float32(i)*0.11, true)
			assert.Greater(t, op, float32(0))
		}
	})
}

func TestScanline(t *testing.T) {
	for row := 0; row < 480; row++ {
		v := (float32(row) + 0.5) / 480
		s := Scanline(v, 480, StaticScanlineOpacity)
		assert.Greater(t, s, float32(0), "row %d", row)
		assert.LessOrEqual(t, s, float32(1), "row %d", row)
		assert.False(t, s != s, "NaN at row %d", row)
	}
}

func TestVignette(t *testing.T) {
	t.Run("zero at every edge", func(t *testing.T) {
		assert.Equal(t, float32(0), Vignette(0, 0.5, 640))
		assert.Equal(t, float32(0), Vignette(1, 0.5, 640))
		assert.Equal(t, float32(0), Vignette(0.5, 0, 640))
		assert.Equal(t, float32(0), Vignette(0.5, 1, 640))
	})

	t.Run("clamped at the center on wide screens", func(t *testing.T) {
		// (640/16) * 0.5^4 = 2.5, clamped to 1.
		assert.Equal(t, float32(1), Vignette(0.5, 0.5, 640))
	})

	t.Run("unclamped on narrow screens", func(t *testing.T) {
		// (4/16) * 0.5^4 = 0.015625.
		assert.InDelta(t, 0.015625, Vignette(0.5, 0.5, 4), 1e-7)
	})

	t.Run("maximal at the center", func(t *testing.T) {
		center := Vignette(0.5, 0.5, 4)
		for _, uv := range [][2]float32{{0.25, 0.5}, {0.5, 0.25}, {0.1, 0.9}, {0.7, 0.3}} {
			assert.Less(t, Vignette(uv[0], uv[1], 4), center)
		}
	})
}

func TestBrightnessBoost(t *testing.T) {
	assert.Equal(t, StaticBrightnessBoost, BrightnessBoost(77, false))

	for _, tt := range []float32{0, 0.5, 12.3} {
		b := BrightnessBoost(tt, true)
		assert.Equal(t, b, BrightnessBoost(tt, true))
		assert.GreaterOrEqual(t, b, StaticBrightnessBoost)
		assert.Less(t, b, StaticBrightnessBoost+0.1)
	}
}
