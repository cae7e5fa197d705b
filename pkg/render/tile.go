package render

import "image"

// Tile is one rectangular region of the output raster plus the RNG seed
// its worker builds the tile's single random stream from (spec §4.6: "submits one
// task per tile with a per-tile RNG seed").
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Seed   int64
}

// NewTileGrid partitions a width x height image into tileW x tileH
// blocks, clamping the last row and column to the image bounds (spec
// §4.6, §8 scenario 6).
func NewTileGrid(width, height, tileW, tileH int) []Tile {
	var tiles []Tile
	id := 0
	for y0 := 0; y0 < height; y0 += tileH {
		for x0 := 0; x0 < width; x0 += tileW {
			x1 := min(x0+tileW, width)
			y1 := min(y0+tileH, height)
			tiles = append(tiles, Tile{
				ID:     id,
				Bounds: image.Rect(x0, y0, x1, y1),
				Seed:   int64(id) + 1, // +1 so tile 0 doesn't seed with 0
			})
			id++
		}
	}
	return tiles
}
