package game

import (
	"fmt"

	"grid-tactics/internal/models"
)

// Grid is the battle board: a fixed width x height terrain assignment.
// It is built once at battle start and read-only afterwards.
type Grid struct {
	Width  int
	Height int
	tiles  []models.TerrainKind // row-major: tiles[y*Width + x]
}

// NewGrid builds a grid from a row-major kind slice. len(tiles) must equal
// width*height.
func NewGrid(width, height int, tiles []models.TerrainKind) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d tiles, got %d", width, height, width*height, len(tiles))
	}
	return &Grid{Width: width, Height: height, tiles: tiles}, nil
}

// InBounds reports whether (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TerrainAt returns the terrain kind at (x, y), or ErrOutOfBounds.
func (g *Grid) TerrainAt(x, y int) (models.TerrainKind, error) {
	if !g.InBounds(x, y) {
		return "", fmt.Errorf("terrain at (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return g.tiles[y*g.Width+x], nil
}

// kindAt is the unchecked lookup for callers that have already
// bounds-checked the coordinate.
func (g *Grid) kindAt(x, y int) models.TerrainKind {
	return g.tiles[y*g.Width+x]
}

// Snapshot returns the wire form of the board.
func (g *Grid) Snapshot() models.GridSnapshot {
	rows := make([][]models.TerrainKind, g.Height)
	for y := 0; y < g.Height; y++ {
		rows[y] = make([]models.TerrainKind, g.Width)
		copy(rows[y], g.tiles[y*g.Width:(y+1)*g.Width])
	}
	return models.GridSnapshot{Width: g.Width, Height: g.Height, Tiles: rows}
}

// GenerateMap builds the default battle map. The pattern is deterministic:
// scattered forests and mountains, regular ponds, and a road row across the
// middle connecting the two camps.
func GenerateMap(width, height int) (*Grid, error) {
	tiles := make([]models.TerrainKind, width*height)
	roadY := height / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var kind models.TerrainKind
			switch {
			case y == roadY:
				kind = models.TerrainRoad
			case (x+y)%7 == 0:
				kind = models.TerrainForest
			case (x*y)%13 == 0 && x > 0 && y > 0:
				kind = models.TerrainMountain
			case x%4 == 0 && y%3 == 0:
				kind = models.TerrainWater
			default:
				kind = models.TerrainGrass
			}
			tiles[y*width+x] = kind
		}
	}
	return NewGrid(width, height, tiles)
}
