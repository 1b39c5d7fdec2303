package crt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePixel(t *testing.T) {
	t.Run("flat white center pixel composites the static factors", func(t *testing.T) {
		src := NewUniformImage(64, 48, 1, 1, 1, 1)
		c := NewCompositor(WithParams(Params{Curvature: DefaultCurvature, Dynamic: false}))

		px := c.EvaluatePixel(src, 0.5, 0.5, 0)

		// The center is a distortion fixed point and the source is uniform
		// white, so every channel reduces to boost * scanline * vignette.
		want := StaticBrightnessBoost *
			Scanline(0.5, float32(src.Height), StaticScanlineOpacity) *
			Vignette(0.5, 0.5, float32(src.Width))

		assert.InDelta(t, want, px[0], 1e-6)
		assert.Equal(t, px[0], px[1])
		assert.Equal(t, px[1], px[2])
		assert.Equal(t, float32(1), px[3])
	})

	t.Run("corners are opaque black at any time", func(t *testing.T) {
		src := NewUniformImage(32, 32, 1, 1, 1, 1)
		c := NewCompositor()

		for _, tt := range []float32{0, 1.23, 42} {
			for _, uv := range [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				px := c.EvaluatePixel(src, uv[0], uv[1], tt)
				assert.Equal(t, [4]float32{0, 0, 0, 1}, px, "uv (%v, %v) t %v", uv[0], uv[1], tt)
			}
		}
	})

	t.Run("alpha is always one", func(t *testing.T) {
		src := NewUniformImage(16, 16, 0.2, 0.4, 0.6, 0)
		c := NewCompositor()

		for i := 0; i < 50; i++ {
			u := float32(i%10) / 10
			v := float32(i%7) / 7
			px := c.EvaluatePixel(src, u, v, float32(i)*0.3)
			assert.Equal(t, float32(1), px[3])
		}
	})
}

func TestRenderFrame(t *testing.T) {
	// A small gradient scene so row parallelism bugs would show as misplaced rows.
	src := NewImage(16, 12)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			src.Set(x, y, float32(x)/16, float32(y)/12, 0.5, 1)
		}
	}

	c := NewCompositor(WithWorkers(4))

	t.Run("preserves dimensions", func(t *testing.T) {
		out := c.RenderFrame(src, 1.5)
		require.Equal(t, src.Width, out.Width)
		require.Equal(t, src.Height, out.Height)
		require.Len(t, out.Pix, src.Width*src.Height*4)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		a := c.RenderFrame(src, 2.75)
		b := c.RenderFrame(src, 2.75)
		assert.Equal(t, a.Pix, b.Pix)
	})

	t.Run("matches per-pixel evaluation", func(t *testing.T) {
		out := c.RenderFrame(src, 0.8)
		for y := 0; y < src.Height; y++ {
			v := (float32(y) + 0.5) / float32(src.Height)
			for x := 0; x < src.Width; x++ {
				u := (float32(x) + 0.5) / float32(src.Width)
				want := c.EvaluatePixel(src, u, v, 0.8)
				assert.Equal(t, want, out.Texel(x, y), "pixel (%d, %d)", x, y)
			}
		}
	})
}

func TestImageSample(t *testing.T) {
	src := NewImage(2, 2)
	src.Set(0, 0, 1, 0, 0, 1)
	src.Set(1, 0, 0, 1, 0, 1)
	src.Set(0, 1, 0, 0, 1, 1)
	src.Set(1, 1, 1, 1, 1, 1)

	t.Run("nearest snaps to texels", func(t *testing.T) {
		assert.Equal(t, [4]float32{1, 0, 0, 1}, src.Sample(0.25, 0.25, FilterNearest))
		assert.Equal(t, [4]float32{1, 1, 1, 1}, src.Sample(0.75, 0.75, FilterNearest))
	})

	t.Run("linear blends texel centers", func(t *testing.T) {
		// Dead center of a 2x2 image averages all four texels.
		got := src.Sample(0.5, 0.5, FilterLinear)
		assert.InDelta(t, 0.5, got[0], 1e-6)
		assert.InDelta(t, 0.5, got[1], 1e-6)
		assert.InDelta(t, 0.5, got[2], 1e-6)
		assert.InDelta(t, 1.0, got[3], 1e-6)
	})

	t.Run("clamps to the edge outside the unit square", func(t *testing.T) {
		assert.Equal(t, src.Texel(0, 0), src.Sample(-2, -2, FilterLinear))
		assert.Equal(t, src.Texel(1, 1), src.Sample(3, 3, FilterNearest))
	})
}
