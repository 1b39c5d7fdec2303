package crt

// VertexOutput mirrors the WGSL vertex stage output: a clip-space position and
// a UV coordinate, interpolated per fragment. It exists only between the paired
// vertex and fragment stages and is never persisted.
type VertexOutput struct {
	// Position is the clip-space position (x, y, z, w), prior to perspective
	// division and rasterization.
	Position [4]float32

	// UV is the texture coordinate forwarded to the fragment stage.
	UV [2]float32
}

// FullscreenVertex computes the vertex output for the index-only fullscreen
// triangle: three vertices, no vertex buffer, covering the whole viewport with
// one oversized triangle so there is no quad diagonal seam. The UV corners are
// (0,0), (2,0), (0,2); after clipping, the triangle interior covers exactly the
// visible [0,1]² UV square. The clip y is flipped to match the target
// coordinate convention.
//
// Parameters:
//   - index: the vertex index (0, 1, or 2)
//
// Returns:
//   - VertexOutput: the clip position and UV for this vertex
func FullscreenVertex(index uint32) VertexOutput {
	u := float32((index << 1) & 2)
	v := float32(index & 2)
	return VertexOutput{
		Position: [4]float32{u*2 - 1, -(v*2 - 1), 0, 1},
		UV:       [2]float32{u, v},
	}
}

// BlitVertex computes the vertex output for the attribute-driven blit stage:
// the supplied 2D position passes through unchanged into clip space (z=0, w=1)
// and the texcoord is forwarded as-is.
//
// Parameters:
//   - x, y: the 2D clip-space position attribute
//   - u, v: the texcoord attribute
//
// Returns:
//   - VertexOutput: the clip position and UV for this vertex
func BlitVertex(x, y, u, v float32) VertexOutput {
	return VertexOutput{
		Position: [4]float32{x, y, 0, 1},
		UV:       [2]float32{u, v},
	}
}
