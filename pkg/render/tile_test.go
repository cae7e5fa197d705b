package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTileGridCoversEveryPixelExactlyOnce(t *testing.T) {
	width, height := 70, 50
	tiles := NewTileGrid(width, height, 32, 32)

	covered := make([]int, width*height)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i, n := range covered {
		assert.Equalf(t, 1, n, "pixel %d covered %d times", i, n)
	}
}

func TestNewTileGridClampsLastRowAndColumn(t *testing.T) {
	tiles := NewTileGrid(70, 50, 32, 32)
	for _, tile := range tiles {
		assert.LessOrEqual(t, tile.Bounds.Max.X, 70)
		assert.LessOrEqual(t, tile.Bounds.Max.Y, 50)
	}
}

func TestNewTileGridSeedsAreDistinctAndNonzero(t *testing.T) {
	tiles := NewTileGrid(64, 64, 32, 32)
	seen := make(map[int64]bool)
	for _, tile := range tiles {
		assert.NotZero(t, tile.Seed)
		assert.False(t, seen[tile.Seed], "duplicate seed %d", tile.Seed)
		seen[tile.Seed] = true
	}
}
