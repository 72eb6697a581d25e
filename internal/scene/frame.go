package scene

import "image"

// AssetID names one of the four images the scene draws with.
type AssetID int

const (
	AssetBackground AssetID = iota
	AssetTileA
	AssetTileB
	AssetSprite
)

// AssetCount is the number of distinct assets.
const AssetCount = 4

// Layer groups draw commands; layers are emitted back to front.
type Layer int

const (
	LayerBackground Layer = iota
	LayerGrid
	LayerSprite
)

// DrawCmd is one blit of a source region onto the screen.
type DrawCmd struct {
	Layer Layer
	Asset AssetID
	Src   image.Rectangle
	Dst   image.Rectangle
}

// Frame is the ordered draw list for one tick.
type Frame struct {
	Cmds []DrawCmd
}

// Sprite returns the sprite command, which is always last.
func (f *Frame) Sprite() *DrawCmd {
	if len(f.Cmds) == 0 {
		return nil
	}
	return &f.Cmds[len(f.Cmds)-1]
}

// TileAsset picks the checkerboard image for a cell.
func TileAsset(gx, gy int) AssetID {
	if (gx+gy)%2 == 0 {
		return AssetTileA
	}
	return AssetTileB
}

// BackgroundDims returns how many background tiles cover the viewport,
// including one spare row and column for the wrap seam.
func (c Config) BackgroundDims() (cols, rows int) {
	b := c.BackgroundTile
	cols = (c.ScreenWidth+b-1)/b + 1
	rows = (c.ScreenHeight+b-1)/b + 1
	return cols, rows
}

// SpritePoint returns the sprite's top-left screen point for a cell.
func (c Config) SpritePoint(p GridPos) ScreenPoint {
	sp := c.Project(p.X, p.Y)
	sp.Y -= c.SpriteLift
	return sp
}

// BuildFrame emits background tiles, then the grid row by row, then the sprite.
func BuildFrame(cfg Config, st State) Frame {
	cols, rows := cfg.BackgroundDims()
	n := cols*rows + cfg.GridSize*cfg.GridSize + 1
	f := Frame{Cmds: make([]DrawCmd, 0, n)}
	src := image.Rect(0, 0, cfg.SourceSize, cfg.SourceSize)

	b := cfg.BackgroundTile
	shift := st.Scroll.Phase() - b
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			x, y := bx*b+shift, by*b+shift
			f.Cmds = append(f.Cmds, DrawCmd{
				Layer: LayerBackground,
				Asset: AssetBackground,
				Src:   src,
				Dst:   image.Rect(x, y, x+b, y+b),
			})
		}
	}

	for gy := 0; gy < cfg.GridSize; gy++ {
		for gx := 0; gx < cfg.GridSize; gx++ {
			sp := cfg.Project(gx, gy)
			f.Cmds = append(f.Cmds, DrawCmd{
				Layer: LayerGrid,
				Asset: TileAsset(gx, gy),
				Src:   src,
				Dst:   image.Rect(sp.X, sp.Y, sp.X+cfg.TileWidth, sp.Y+cfg.BlockHeight),
			})
		}
	}

	sp := cfg.SpritePoint(st.Pos)
	f.Cmds = append(f.Cmds, DrawCmd{
		Layer: LayerSprite,
		Asset: AssetSprite,
		Src:   src,
		Dst:   image.Rect(sp.X, sp.Y, sp.X+cfg.TileWidth, sp.Y+cfg.BlockHeight),
	})
	return f
}
