package crt

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
)

// SampleFilter selects the filtering mode used when the reference compositor
// reads the scene image.
type SampleFilter int

const (
	// FilterNearest snaps to the nearest texel.
	FilterNearest SampleFilter = iota

	// FilterLinear blends the four surrounding texels bilinearly. This matches
	// the filtering sampler the GPU path binds for the G-buffer.
	FilterLinear
)

// Image is a CPU-side RGBA float color buffer, the reference counterpart of
// the G-buffer texture. Texels are stored row-major, four float32 components
// per texel.
type Image struct {
	// Width and Height are the buffer dimensions in texels.
	Width, Height int

	// Pix holds the texel data: Width*Height*4 float32 values in RGBA order.
	Pix []float32
}

// NewImage creates a zeroed image of the given dimensions.
//
// Parameters:
//   - width, height: buffer dimensions in texels
//
// Returns:
//   - *Image: the allocated image, all texels (0, 0, 0, 0)
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
}

// NewUniformImage creates an image with every texel set to the given color.
//
// Parameters:
//   - width, height: buffer dimensions in texels
//   - r, g, b, a: the color to fill with
//
// Returns:
//   - *Image: the filled image
func NewUniformImage(width, height int, r, g, b, a float32) *Image {
	img := NewImage(width, height)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// Set writes one texel. Out-of-range coordinates are ignored.
//
// Parameters:
//   - x, y: texel coordinates
//   - r, g, b, a: the color to write
func (img *Image) Set(x, y int, r, g, b, a float32) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 4
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = a
}

// Texel reads one texel with clamp-to-edge addressing: coordinates outside the
// buffer are clamped to the nearest edge texel.
//
// Parameters:
//   - x, y: texel coordinates, clamped into range
//
// Returns:
//   - [4]float32: the RGBA value at the clamped coordinate
func (img *Image) Texel(x, y int) [4]float32 {
	x = min(max(x, 0), img.Width-1)
	y = min(max(y, 0), img.Height-1)
	i := (y*img.Width + x) * 4
	return [4]float32{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// Sample reads the image at a normalized UV coordinate with clamp-to-edge
// addressing and the given filter, matching the GPU sampler configuration the
// renderer binds for the G-buffer.
//
// Parameters:
//   - u, v: normalized coordinate; values outside [0, 1] clamp to the edge
//   - filter: FilterNearest or FilterLinear
//
// Returns:
//   - [4]float32: the sampled RGBA value
func (img *Image) Sample(u, v float32, filter SampleFilter) [4]float32 {
	tx := u*float32(img.Width) - 0.5
	ty := v*float32(img.Height) - 0.5

	if filter == FilterNearest {
		return img.Texel(int(math32.Round(tx)), int(math32.Round(ty)))
	}

	x0 := math32.Floor(tx)
	y0 := math32.Floor(ty)
	fx := tx - x0
	fy := ty - y0

	c00 := img.Texel(int(x0), int(y0))
	c10 := img.Texel(int(x0)+1, int(y0))
	c01 := img.Texel(int(x0), int(y0)+1)
	c11 := img.Texel(int(x0)+1, int(y0)+1)

	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*fx
		bottom := c01[i] + (c11[i]-c01[i])*fx
		out[i] = top + (bottom-top)*fy
	}
	return out
}

// compositor is the implementation of the Compositor interface.
type compositor struct {
	params Params
	filter SampleFilter

	// pool runs row composites in parallel. Rows are independent, stateless
	// invocations — the same execution model as the fragment stage, so no
	// ordering between rows may affect the output.
	pool    worker.DynamicWorkerPool
	workers int
}

// Compositor renders the CRT postprocess effect on the CPU, texel for texel
// identical to the GPU fragment shader. It backs the end-to-end tests and
// offline export, where a recorded frame must match live playback exactly.
type Compositor interface {
	// Params returns the effect parameters this compositor was built with.
	//
	// Returns:
	//   - Params: the effect parameters
	Params() Params

	// EvaluatePixel runs the full postprocess algorithm for a single output
	// pixel: distortion, out-of-bounds cutoff, per-channel aberration sampling,
	// scanline, vignette, and composite.
	//
	// Parameters:
	//   - src: the scene color buffer to read
	//   - u, v: the output pixel's UV coordinate in [0, 1]²
	//   - t: global time in seconds
	//
	// Returns:
	//   - [4]float32: the final RGBA value; alpha is always 1
	EvaluatePixel(src *Image, u, v, t float32) [4]float32

	// RenderFrame composites a full output frame from the scene buffer at the
	// given time. The output has the same dimensions as the input.
	//
	// Parameters:
	//   - src: the scene color buffer to read
	//   - t: global time in seconds
	//
	// Returns:
	//   - *Image: the composited frame
	RenderFrame(src *Image, t float32) *Image
}

var _ Compositor = &compositor{}

// NewCompositor creates a Compositor with the provided options applied over
// the defaults (DefaultParams, linear filtering, one worker per spare CPU).
//
// Parameters:
//   - opts: a variadic list of CompositorOption functions
//
// Returns:
//   - Compositor: the configured compositor
func NewCompositor(opts ...CompositorOption) Compositor {
	c := &compositor{
		params:  DefaultParams(),
		filter:  FilterLinear,
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	return c
}

func (c *compositor) Params() Params {
	return c.params
}

func (c *compositor) EvaluatePixel(src *Image, u, v, t float32) [4]float32 {
	du, dv := DistortUV(u, v, c.params.Curvature)
	if !InBounds(du, dv) {
		return [4]float32{0, 0, 0, 1}
	}

	offsets := ChannelOffsets(AberrationIntensity(t, c.params.Dynamic))
	r := src.Sample(du+offsets[0][0], dv+offsets[0][1], c.filter)[0]
	g := src.Sample(du+offsets[1][0], dv+offsets[1][1], c.filter)[1]
	b := src.Sample(du+offsets[2][0], dv+offsets[2][1], c.filter)[2]

	opacity := ScanlineOpacity(du, dv, t, c.params.Dynamic)
	scan := Scanline(dv, float32(src.Height), opacity)
	vig := Vignette(u, v, float32(src.Width))
	boost := BrightnessBoost(t, c.params.Dynamic)

	k := boost * scan * vig
	return [4]float32{k * r, k * g, k * b, 1}
}

func (c *compositor) RenderFrame(src *Image, t float32) *Image {
	out := NewImage(src.Width, src.Height)

	var wg sync.WaitGroup
	taskID := 0
	for y := 0; y < src.Height; y++ {
		wg.Add(1)
		row := y
		id := taskID
		taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				v := (float32(row) + 0.5) / float32(src.Height)
				for x := 0; x < src.Width; x++ {
					u := (float32(x) + 0.5) / float32(src.Width)
					px := c.EvaluatePixel(src, u, v, t)
					out.Set(x, row, px[0], px[1], px[2], px[3])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return out
}
