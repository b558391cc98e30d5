package game

import (
	"fmt"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/physics"
	"github.com/vovakirdan/littleman/internal/world"
)

// Colours that are not taken from the level file.
var (
	mapBackground = core.RGB(0x1c, 0x20, 0x2c)
	hudBackground = core.RGB(0x10, 0x10, 0x14)
	hitboxColor   = core.RGB(0xc0, 0x20, 0x20)
	figureColor   = core.ColorWhite
)

// Sprite frames, three rows from head to feet.
var (
	frameStand   = [3]string{" o ", "/|\\", "/ \\"}
	frameWalk    = [3]string{" o ", "-|-", " | "}
	frameAirborn = [3]string{"\\o/", " | ", "/ \\"}
	frameClimb   = [3]string{"\\o/", " | ", "| |"}
)

// Render draws the current game state to the screen: back shapes, the
// character, front shapes, the hit box overlay and the HUD line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	top := 0
	if g.runtime.HUD {
		top = 1
	}
	rows := dst.Height() - top
	if rows <= 0 {
		g.drawHUD(dst)
		return
	}

	snap := g.state.Snapshot()
	m := snap.Map
	box := g.state.Tuning().Box
	cx := snap.Char.X + (box.Left+box.Right)/2
	cy := snap.Char.Y + (box.Top+box.Bottom)/2
	g.camera.Follow(m, cx, cy, dst.Width(), rows)

	view := newViewport(dst, g.camera, top)
	view.fill(view.cam.Span(0, 0, m.Width, m.Height), mapBackground)

	for _, s := range m.Shapes() {
		if s.Collision.Visible() && !s.Collision.Front() {
			view.shape(s)
		}
	}
	g.drawCharacter(view, snap)
	for _, s := range m.Shapes() {
		if s.Collision.Visible() && s.Collision.Front() {
			view.shape(s)
		}
	}
	if g.hitbox {
		c := snap.Char
		r := view.cam.Span(c.X+box.Left, c.Y+box.Top, c.X+box.Right, c.Y+box.Bottom)
		view.tint(r, hitboxColor)
	}

	if g.runtime.HUD {
		g.drawHUD(dst)
	}
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// frame picks the sprite for the character's current state.
func (g *Game) frame(snap physics.Snapshot) [3]string {
	switch {
	case snap.Mode != physics.Grounded:
		return frameAirborn
	case !g.state.Supported() && g.state.Climb().Kind != world.NoClimb:
		return frameClimb
	case snap.Char.Step == 1:
		return frameWalk
	}
	return frameStand
}

func (g *Game) drawCharacter(v viewport, snap physics.Snapshot) {
	c := snap.Char
	box := g.state.Tuning().Box
	col, _ := v.cam.Cell(c.X+(box.Left+box.Right)/2, c.Y)
	feet := v.cam.Span(c.X+box.Left, c.Y+box.Top, c.X+box.Right, c.Y+box.Bottom)
	bottom := feet.Bottom() - 1

	sprite := g.frame(snap)
	for i, line := range sprite {
		y := bottom - (len(sprite) - 1 - i)
		x := col - 1
		for _, r := range line {
			v.set(x, y, r, figureColor)
			x++
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.FillRect(core.NewRect(0, 0, dst.Width(), 1), hudBackground)
	st := g.State()
	left := fmt.Sprintf(" map %d  (%d,%d)  %s", st.MapID, st.X, st.Y, st.Mode)
	if g.hitbox {
		left += "  [hitbox]"
	}
	dst.DrawText(0, 0, left, core.ColorGray)
	if n := g.Notice(); n != "" {
		x := max(dst.Width()-len([]rune(n))-1, len([]rune(left))+2)
		dst.DrawText(x, 0, n, core.ColorYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	cx, cy := dst.Bounds().Center()

	// Box sized to the longer line, centred on the screen
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect(cx-boxW/2, cy-boxH/2, boxW, boxH)
	dst.FillRect(box, hudBackground)
	dst.DrawBox(box, core.ColorGray)

	dst.DrawTextCentered(box.Y+1, title, core.ColorWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorGray)
}

// viewport draws camera cells into the screen below the HUD.
type viewport struct {
	dst  *core.Screen
	cam  Camera
	top  int
	clip core.Rect
}

func newViewport(dst *core.Screen, cam Camera, top int) viewport {
	return viewport{
		dst:  dst,
		cam:  cam,
		top:  top,
		clip: core.NewRect(0, 0, dst.Width(), dst.Height()-top),
	}
}

func (v viewport) shape(s world.Shape) {
	r := v.cam.ShapeCells(s.Rect)
	bg := core.RGB(s.Color.R, s.Color.G, s.Color.B)
	if s.Collision.Oval() {
		if r.Intersects(v.clip) {
			v.dst.FillEllipse(core.NewRect(r.X, r.Y+v.top, r.W, r.H), bg)
		}
		return
	}
	v.fill(r, bg)
}

func (v viewport) fill(r core.Rect, bg core.Color) {
	r = r.Intersect(v.clip)
	if r.Empty() {
		return
	}
	v.dst.FillRect(core.NewRect(r.X, r.Y+v.top, r.W, r.H), bg)
}

func (v viewport) tint(r core.Rect, bg core.Color) {
	r = r.Intersect(v.clip)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c := v.dst.GetCell(x, y+v.top)
			c.BG = bg
			v.dst.SetCell(x, y+v.top, c)
		}
	}
}

func (v viewport) set(x, y int, r rune, fg core.Color) {
	if !v.clip.Contains(x, y) {
		return
	}
	v.dst.SetFG(x, y+v.top, r, fg)
}
