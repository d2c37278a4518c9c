package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// Glyphs used by the terminal drawer
const (
	glyphCorner = '+'
	glyphHEdge  = '-'
	glyphVEdge  = '|'
	glyphFill   = 'o'
	glyphLine   = '*'
	glyphEmpty  = ' '
)

// Screen is the part of tcell.Screen the terminal drawer presents to
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

type termCell struct {
	ch rune
	fg tcell.Color
}

// TerminalDrawer rasterizes debug primitives into a character grid that can
// be shown on a tcell screen or written as plain text
type TerminalDrawer struct {
	width     int
	height    int
	buffer    [][]termCell
	scale     float64
	centerPos geometry.Vector2D
}

// NewTerminalDrawer creates a drawer with the given size in characters.
// scale is the number of world units per character.
func NewTerminalDrawer(width, height int, scale float64) *TerminalDrawer {
	if scale <= 0 {
		scale = 1
	}
	buffer := make([][]termCell, height)
	for i := range buffer {
		buffer[i] = make([]termCell, width)
	}
	d := &TerminalDrawer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	d.Clear()
	return d
}

// Size returns the grid size in characters
func (d *TerminalDrawer) Size() (int, int) { return d.width, d.height }

// SetCenter sets the world position shown in the middle of the grid
func (d *TerminalDrawer) SetCenter(pos geometry.Vector2D) {
	d.centerPos = pos
}

// FitRegion centers the view on region and picks a scale that shows all of it
func (d *TerminalDrawer) FitRegion(region geometry.Rect) {
	d.centerPos = region.Center()
	if d.width > 0 && d.height > 0 {
		d.scale = math.Max(region.Width/float64(d.width), region.Height/float64(d.height))
	}
	if d.scale <= 0 {
		d.scale = 1
	}
}

func (d *TerminalDrawer) toScreen(pos geometry.Vector2D) (float64, float64) {
	return (pos.X-d.centerPos.X)/d.scale + float64(d.width)/2,
		(pos.Y-d.centerPos.Y)/d.scale + float64(d.height)/2
}

// worldToScreen converts world coordinates to the character cell holding them
func (d *TerminalDrawer) worldToScreen(pos geometry.Vector2D) (int, int) {
	x, y := d.toScreen(pos)
	return clampInt(math.Floor(x)), clampInt(math.Floor(y))
}

func (d *TerminalDrawer) screenToWorld(x, y float64) geometry.Vector2D {
	return geometry.Vector2D{
		X: (x-float64(d.width)/2)*d.scale + d.centerPos.X,
		Y: (y-float64(d.height)/2)*d.scale + d.centerPos.Y,
	}
}

// Clear blanks the grid
func (d *TerminalDrawer) Clear() {
	for y := range d.buffer {
		for x := range d.buffer[y] {
			d.buffer[y][x] = termCell{ch: glyphEmpty, fg: tcell.ColorDefault}
		}
	}
}

// Cell returns the glyph and color at a character position
func (d *TerminalDrawer) Cell(x, y int) (rune, tcell.Color, bool) {
	if !d.inBounds(x, y) {
		return 0, tcell.ColorDefault, false
	}
	c := d.buffer[y][x]
	return c.ch, c.fg, true
}

// Present copies the grid to screen and shows it
func (d *TerminalDrawer) Present(screen Screen) {
	for y := range d.buffer {
		for x, c := range d.buffer[y] {
			screen.SetContent(x, y, c.ch, nil, tcell.StyleDefault.Foreground(c.fg))
		}
	}
	screen.Show()
}

// WriteTo writes the grid as plain text inside a border
func (d *TerminalDrawer) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", d.width) + "+\n"
	sb.WriteString(border)
	for y := range d.buffer {
		sb.WriteByte('|')
		for _, c := range d.buffer[y] {
			sb.WriteRune(c.ch)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	n, err := io.WriteString(w, sb.String())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write terminal frame: %w", err)
	}
	return int64(n), nil
}

// DrawFilledCircle implements collision.DebugDrawer
func (d *TerminalDrawer) DrawFilledCircle(center geometry.Vector2D, radius float64, c color.Color, opacity float64) {
	fg := foreground(c, opacity)
	minX, minY := d.worldToScreen(geometry.Vector2D{X: center.X - radius, Y: center.Y - radius})
	maxX, maxY := d.worldToScreen(geometry.Vector2D{X: center.X + radius, Y: center.Y + radius})
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, d.width-1), min(maxY, d.height-1)
	rSq := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := d.screenToWorld(float64(x)+0.5, float64(y)+0.5)
			if p.DistanceSquared(center) <= rSq {
				d.set(x, y, glyphFill, fg)
			}
		}
	}
	cx, cy := d.worldToScreen(center)
	d.set(cx, cy, glyphFill, fg)
}

// DrawRectangleOutline implements collision.DebugDrawer
func (d *TerminalDrawer) DrawRectangleOutline(rect geometry.Rect, c color.Color, opacity float64) {
	fg := foreground(c, opacity)
	x0, y0 := d.worldToScreen(rect.TopLeft())
	x1, y1 := d.worldToScreen(rect.BottomRight())
	for x := max(x0+1, 0); x < min(x1, d.width); x++ {
		d.set(x, y0, glyphHEdge, fg)
		d.set(x, y1, glyphHEdge, fg)
	}
	for y := max(y0+1, 0); y < min(y1, d.height); y++ {
		d.set(x0, y, glyphVEdge, fg)
		d.set(x1, y, glyphVEdge, fg)
	}
	d.set(x0, y0, glyphCorner, fg)
	d.set(x1, y0, glyphCorner, fg)
	d.set(x0, y1, glyphCorner, fg)
	d.set(x1, y1, glyphCorner, fg)
}

// DrawLineSegment implements collision.DebugDrawer
func (d *TerminalDrawer) DrawLineSegment(from, to geometry.Vector2D, c color.Color, opacity float64) {
	fg := foreground(c, opacity)
	fx, fy := d.toScreen(from)
	tx, ty := d.toScreen(to)
	fx, fy, tx, ty, ok := clipSegment(fx, fy, tx, ty, float64(d.width), float64(d.height))
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	x1, y1 := int(math.Floor(tx)), int(math.Floor(ty))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		d.set(x0, y0, glyphLine, fg)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (d *TerminalDrawer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

func (d *TerminalDrawer) set(x, y int, ch rune, fg tcell.Color) {
	if d.inBounds(x, y) {
		d.buffer[y][x] = termCell{ch: ch, fg: fg}
	}
}

// foreground darkens c towards black by opacity
func foreground(c color.Color, opacity float64) tcell.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return tcell.ColorDefault
	}
	opacity = math.Max(0, math.Min(1, opacity))
	r, g, b := colorful.Color{}.BlendRgb(cf, opacity).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// clipSegment clips a segment to [0,w)x[0,h) with the Liang-Barsky method
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	const eps = 1e-9
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - eps - x0},
		{-dy, y0},
		{dy, h - eps - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// clampInt converts to int without overflowing on far off-screen positions
func clampInt(v float64) int {
	const limit = 1 << 30
	if math.IsNaN(v) {
		return -limit
	}
	return int(math.Max(-limit, math.Min(limit, v)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ collision.DebugDrawer = (*TerminalDrawer)(nil)
