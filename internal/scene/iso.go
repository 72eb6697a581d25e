package scene

// GridPos is a cell on the logical tile board.
type GridPos struct {
	X, Y int
}

// ScreenPoint is the pixel position where a cell's block is drawn.
type ScreenPoint struct {
	X, Y int
}

// Project maps grid coordinates to the top-left screen point of the cell's
// block. Stepping +gx moves (+w/2, +h/2), stepping +gy moves (-w/2, +h/2).
func (c Config) Project(gx, gy int) ScreenPoint {
	return ScreenPoint{
		X: c.OriginX + (gx-gy)*(c.TileWidth/2),
		Y: c.OriginY + (gx+gy)*(c.TileHeight/2),
	}
}

// Contains reports whether p lies on the board.
func (c Config) Contains(p GridPos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= c.MaxCell() && p.Y <= c.MaxCell()
}
