// Package term draws frames in a terminal and turns terminal input into
// game events, so the game can be played without a browser.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/mo-shahab/go-pong/server/geom"
	"github.com/mo-shahab/go-pong/server/scene"
)

// Screen is the part of tcell.Screen the renderer draws with.
type Screen interface {
	Size() (int, int)
	Clear()
	Show()
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// errorFrames is how long an error stays on screen.
const errorFrames = 180

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBall  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

var glyphs = map[string]rune{
	"border_north": '═',
	"border_south": '═',
	"centre_line":  '┊',
	"player":       '█',
	"enemy":        '█',
}

// Renderer draws the field from above, the way the game camera sees it.
type Renderer struct {
	screen    Screen
	err       string
	errFrames int
}

func NewRenderer(s Screen) *Renderer {
	return &Renderer{screen: s}
}

func (r *Renderer) Render(f scene.Frame) error {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w < 20 || h < 8 {
		r.text(0, 0, "terminal too small", styleError)
		r.screen.Show()
		return nil
	}

	if f.State.Menu() {
		r.menu(f, w, h)
	} else {
		r.field(f, w, h)
	}

	if r.errFrames > 0 {
		r.errFrames--
		r.text(0, h-1, r.err, styleError)
	}
	r.screen.Show()
	return nil
}

// ReportError shows err on the bottom line for a few seconds.
func (r *Renderer) ReportError(err error) {
	r.err = err.Error()
	r.errFrames = errorFrames
}

func (r *Renderer) menu(f scene.Frame, w, h int) {
	var rot geom.Vec3
	if logo, ok := f.Node(scene.LogoName); ok {
		rot = logo.Rotation
	}
	// the logo leans toward the pointer
	title := "G O   P O N G"
	col := (w-len(title))/2 + int(math.Round(rot.Y*float64(w)/4))
	row := h/3 + int(math.Round(-rot.X*float64(h)/4))
	r.text(col, row, title, styleText)

	r.center(w, h/2+1, "[1] Low  [2] Middle  [3] Hard  [4] Very hard", styleText)
	r.center(w, h/2+2, "[5] Two players", styleText)
	r.center(w, h/2+4, "[Enter] Play   [Esc] Quit", styleDim)
}

func (r *Renderer) field(f scene.Frame, w, h int) {
	lo, hi := extent(f.Nodes)
	if hi.X <= lo.X || hi.Z <= lo.Z {
		return
	}
	rows := h - 2
	project := func(x, z float64) (int, int) {
		col := int(math.Round((x - lo.X) / (hi.X - lo.X) * float64(w-1)))
		row := 1 + int(math.Round((z-lo.Z)/(hi.Z-lo.Z)*float64(rows-1)))
		return col, row
	}

	for _, n := range f.Nodes {
		switch n.Kind {
		case scene.KindBox:
			g, ok := glyphs[n.Name]
			if !ok {
				g = '#'
			}
			half := n.Size.Scale(0.5)
			c0, r0 := project(n.Position.X-half.X, n.Position.Z-half.Z)
			c1, r1 := project(n.Position.X+half.X, n.Position.Z+half.Z)
			for y := r0; y <= r1; y++ {
				for x := c0; x <= c1; x++ {
					r.screen.SetContent(x, y, g, nil, styleText)
				}
			}
		case scene.KindSphere:
			c, row := project(n.Position.X, n.Position.Z)
			r.screen.SetContent(c, row, '●', nil, styleBall)
		}
	}

	status := fmt.Sprintf("%d : %d   ball %s", f.Misses.Left, f.Misses.Right, f.BallState)
	r.text(0, 0, status, styleText)
	help := "↑↓ W/S Space P"
	r.text(w-len([]rune(help)), 0, help, styleDim)
}

// extent is the XZ rectangle covered by the field's boxes and planes.
func extent(nodes []scene.Node) (lo, hi geom.Vec3) {
	lo = geom.Vec3{X: math.Inf(1), Z: math.Inf(1)}
	hi = geom.Vec3{X: math.Inf(-1), Z: math.Inf(-1)}
	for _, n := range nodes {
		if n.Kind != scene.KindBox && n.Kind != scene.KindPlane {
			continue
		}
		half := n.Size.Scale(0.5)
		lo.X = math.Min(lo.X, n.Position.X-half.X)
		lo.Z = math.Min(lo.Z, n.Position.Z-half.Z)
		hi.X = math.Max(hi.X, n.Position.X+half.X)
		hi.Z = math.Max(hi.Z, n.Position.Z+half.Z)
	}
	return lo, hi
}

func (r *Renderer) center(w, row int, s string, style tcell.Style) {
	r.text((w-len([]rune(s)))/2, row, s, style)
}

func (r *Renderer) text(col, row int, s string, style tcell.Style) {
	for i, c := range []rune(s) {
		r.screen.SetContent(col+i, row, c, nil, style)
	}
}
