package heatmap

// Point is a screen position in renderer units.
type Point struct {
	X, Y int
}

// Add offsets p by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Geometry turns grid coordinates into screen rectangles. Units belong to
// the renderer: terminal cells for text output, pixels for SVG.
type Geometry struct {
	CellWidth  int
	CellHeight int
	CellGap    int

	// TitleHeight is reserved above each block for the month title.
	TitleHeight int
	// HeaderHeight is reserved for the weekday row.
	HeaderHeight int
	// YearTitleHeight is reserved above each year in year view.
	YearTitleHeight int

	// MonthsPerRow is how many month blocks share a row in year view.
	MonthsPerRow int
	BlockGapX    int
	BlockGapY    int

	Origin Point
}

// TextGeometry suits a terminal: four columns and one line per day.
func TextGeometry() Geometry {
	return Geometry{
		CellWidth:       4,
		CellHeight:      1,
		CellGap:         0,
		TitleHeight:     1,
		HeaderHeight:    1,
		YearTitleHeight: 2,
		MonthsPerRow:    3,
		BlockGapX:       3,
		BlockGapY:       1,
	}
}

// PixelGeometry suits SVG output with 60px cells.
func PixelGeometry() Geometry {
	return Geometry{
		CellWidth:       60,
		CellHeight:      60,
		CellGap:         0,
		TitleHeight:     40,
		HeaderHeight:    30,
		YearTitleHeight: 50,
		MonthsPerRow:    3,
		BlockGapX:       30,
		BlockGapY:       20,
		Origin:          Point{X: 20, Y: 10},
	}
}

func (g Geometry) monthsPerRow() int {
	if g.MonthsPerRow <= 0 {
		return 1
	}
	return g.MonthsPerRow
}

// BlockSize is the footprint of one month including its title and weekday
// row. It always reserves MaxWeeks rows.
func (g Geometry) BlockSize() (int, int) {
	w := 7*g.CellWidth + 6*g.CellGap
	h := g.TitleHeight + g.HeaderHeight + MaxWeeks*g.CellHeight + (MaxWeeks-1)*g.CellGap
	return w, h
}

// YearSize is the footprint of twelve blocks plus the year title.
func (g Geometry) YearSize() (int, int) {
	bw, bh := g.BlockSize()
	per := g.monthsPerRow()
	rows := (12 + per - 1) / per
	w := per*bw + (per-1)*g.BlockGapX
	h := g.YearTitleHeight + rows*bh + (rows-1)*g.BlockGapY
	return w, h
}

// BlockOrigin is the top-left of month index i (0 = January) in a year whose
// top-left is at yearOrigin.
func (g Geometry) BlockOrigin(yearOrigin Point, i int) Point {
	bw, bh := g.BlockSize()
	per := g.monthsPerRow()
	return Point{
		X: yearOrigin.X + (i%per)*(bw+g.BlockGapX),
		Y: yearOrigin.Y + g.YearTitleHeight + (i/per)*(bh+g.BlockGapY),
	}
}

// HeaderOrigin is where the weekday row of a block begins.
func (g Geometry) HeaderOrigin(block Point) Point {
	return Point{X: block.X, Y: block.Y + g.TitleHeight}
}

// ColumnX is the left edge of column col within a block.
func (g Geometry) ColumnX(block Point, col int) int {
	return block.X + col*(g.CellWidth+g.CellGap)
}

// CellRect is the rectangle of a cell within the block at origin.
func (g Geometry) CellRect(block Point, c Cell) Rect {
	return Rect{
		X: g.ColumnX(block, c.Col),
		Y: block.Y + g.TitleHeight + g.HeaderHeight + c.Row*(g.CellHeight+g.CellGap),
		W: g.CellWidth,
		H: g.CellHeight,
	}
}
