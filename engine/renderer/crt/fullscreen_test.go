package crt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullscreenVertex(t *testing.T) {
	// The three generated vertices form one oversized triangle whose interior
	// covers exactly the visible [0,1]² UV square after clipping.
	expected := []VertexOutput{
		{Position: [4]float32{-1, 1, 0, 1}, UV: [2]float32{0, 0}},
		{Position: [4]float32{3, 1, 0, 1}, UV: [2]float32{2, 0}},
		{Position: [4]float32{-1, -3, 0, 1}, UV: [2]float32{0, 2}},
	}
	for i, want := range expected {
		got := FullscreenVertex(uint32(i))
		assert.Equal(t, want, got, "vertex %d", i)
	}
}

func TestBlitVertex(t *testing.T) {
	out := BlitVertex(-1, 1, 0, 0.5)
	assert.Equal(t, [4]float32{-1, 1, 0, 1}, out.Position)
	assert.Equal(t, [2]float32{0, 0.5}, out.UV)
}
