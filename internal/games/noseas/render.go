package noseas

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/noseas/internal/clock"
	"github.com/vovakirdan/noseas/internal/core"
)

// Visual characters for rendering
const (
	FloorChar   = '═'
	CeilingChar = '─'
	WaveChar    = '≈'
	GuideChar   = '┆'
	FadeChar    = '·'
)

// tutorialSpacing is the on-screen distance between tutorial lines in world
// pixels. Dismissal gating uses the configured line height instead.
const tutorialSpacing = 30

// viewport maps world pixels onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, w WorldView) viewport {
	return viewport{
		sx: float64(dst.Width()) / w.Width,
		sy: float64(dst.Height()) / w.Height,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// cells converts a world box to at least one screen cell.
func (v viewport) cells(r RectView) core.Rect {
	x, y := v.col(r.X), v.row(r.Y)
	w := core.Max(1, int(math.Round(r.W*v.sx)))
	h := core.Max(1, int(math.Round(r.H*v.sy)))
	return core.NewRect(x, y, w, h)
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	snap := g.Snapshot()
	RenderSnapshot(dst, snap)
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// RenderSnapshot draws a snapshot into dst. It only reads the snapshot, so
// spectators can render frames received over the wire.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if snap.World.Width <= 0 || snap.World.Height <= 0 {
		return
	}
	v := newViewport(dst, snap.World)

	switch snap.Mode {
	case ModeMenu.String():
		if snap.Tutorial != nil {
			drawTutorial(dst, v, snap)
			return
		}
		drawMenu(dst, v, snap)
	case ModePlaying.String():
		drawPlaying(dst, v, snap)
	case ModeGameOver.String():
		drawGameOver(dst, v, snap)
	}
}

func drawPlaying(dst *core.Screen, v viewport, snap Snapshot) {
	floorRow := v.row(snap.World.FloorY)
	ceilRow := v.row(snap.World.CeilingY)

	drawWaves(dst, v, snap, floorRow+1)
	dst.DrawHLine(0, ceilRow, dst.Width(), CeilingChar, core.ColorGray)
	dst.DrawHLine(0, floorRow, dst.Width(), FloorChar, core.ColorWhite)

	drawHUD(dst, snap)

	if snap.Guide != "" {
		c := core.ColorOrange
		if snap.Guide == "active" {
			c = core.ColorBlue
		}
		x := v.col(snap.Player.X + snap.Player.W/2)
		dst.DrawVLine(x, ceilRow+1, floorRow-ceilRow-1, GuideChar, c)
	}
	if snap.Portal != "" && snap.PortalOpacity > 0.2 {
		c := core.ColorBrightCyan
		if snap.Portal == "exit" {
			c = core.ColorBrightRed
		}
		x := v.col(snap.Player.X + snap.Player.W/2)
		dst.DrawTextColor(x-2, v.row(snap.PortalY), "(( ))", c)
	}

	for _, f := range snap.Fading {
		r := v.cells(f)
		dst.DrawRect(r, FadeChar, core.ColorGray)
	}
	for _, o := range snap.Items {
		drawObstacleSafe(dst, v, o)
	}

	drawPlayer(dst, v, snap.Player, snap.Blessed)

	if snap.Blessed {
		msg := "Pirate's Blessing: " + clock.FormatSeconds(ms(snap.BlessingRemainingMs)) + "s"
		dst.DrawTextCentered(core.Min(floorRow+2, dst.Height()-1), msg, core.ColorBrightYellow)
	}
	if snap.Banner != "" {
		dst.DrawTextCentered((ceilRow+floorRow)/3, snap.Banner, core.ColorBrightCyan)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	perk := "No Perks Active"
	if snap.Perk != "" && snap.PerkRemainingMs > 0 {
		perk = snap.Perk + ": " + clock.FormatSeconds(ms(snap.PerkRemainingMs)) + "s"
	}
	dst.DrawTextColor(1, 0, perk, core.ColorCyan)

	dst.DrawTextCentered(0, fmt.Sprintf("%d", snap.Score), core.ColorBrightWhite)

	speed := fmt.Sprintf("Speed: %.1f", snap.Speed)
	dst.DrawText(dst.Width()-len(speed)-1, 0, speed)
}

func drawWaves(dst *core.Screen, v viewport, snap Snapshot, row int) {
	span := v.col(snap.World.Width)
	for _, bx := range snap.Backgrounds {
		start := v.col(bx)
		for x := start; x < start+span; x += 6 {
			dst.SetColor(x, row, WaveChar, core.ColorBlue)
			dst.SetColor(x+3, row+1, WaveChar, core.ColorBlue)
		}
	}
}

// drawObstacleSafe draws one obstacle. A panic while drawing is logged and
// the obstacle skipped so the rest of the frame still renders.
func drawObstacleSafe(dst *core.Screen, v viewport, o ObstacleView) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("obstacle draw failed", "kind", o.Kind, "x", o.Rect.X, "y", o.Rect.Y, "panic", r)
		}
	}()
	drawObstacle(dst, v, o)
}

func drawObstacle(dst *core.Screen, v viewport, o ObstacleView) {
	r := v.cells(o.Rect)
	var glyph rune
	var c core.Color

	switch o.Kind {
	case KindBarrel.String():
		glyph, c = '◐', core.ColorOrange
		if o.Rotation < 0 {
			glyph = '◑'
		}
	case KindCrate.String():
		glyph, c = '▦', core.ColorYellow
	case KindChest.String():
		glyph, c = '$', core.ColorBrightYellow
		if o.Rect.Opacity < 1 {
			c = core.ColorGray
		}
	case KindAttack.String():
		glyph, c = '☠', core.ColorBrightMagenta
	default:
		panic(fmt.Sprintf("unknown obstacle kind %q", o.Kind))
	}

	dst.DrawRect(r, glyph, c)
	if o.Taunt != "" {
		x := r.X + r.W/2 - len([]rune(o.Taunt))/2
		dst.DrawTextColor(x, r.Y-1, o.Taunt, core.ColorRed)
	}
}

func drawPlayer(dst *core.Screen, v viewport, p PlayerView, blessed bool) {
	r := v.cells(p.RectView)

	body := '█'
	switch {
	case p.Opacity < 0.4:
		body = '░'
	case p.Opacity < 0.9:
		body = '▓'
	}
	c := core.ColorWhite
	switch {
	case blessed:
		c = core.ColorBrightYellow
	case p.Phasing:
		c = core.ColorCyan
	}
	dst.DrawRect(r, body, c)

	// Legs sit on the ground side, which is the top when inverted.
	legRow, headRow := r.Bottom()-1, r.Y
	if p.Inverted {
		legRow, headRow = r.Y, r.Bottom()-1
	}
	if r.H > 1 {
		legs := "╱╲"
		if p.Animation == AnimJump.String() || p.Frame%2 == 1 {
			legs = "╲╱"
		}
		for x := r.X; x < r.Right(); x += 2 {
			dst.DrawTextColor(x, legRow, legs, c)
		}
	}
	dst.SetColor(r.Right()-2, headRow, 'o', core.ColorBrightWhite)
}

func drawMenu(dst *core.Screen, v viewport, snap Snapshot) {
	h := dst.Height()
	floorRow := v.row(snap.World.FloorY)

	dst.DrawHLine(0, floorRow, dst.Width(), FloorChar, core.ColorWhite)
	dst.DrawTextCentered(h/5, "N O   S E A S", core.ColorBrightCyan)
	dst.DrawTextCentered(h/5+2, "PRESS SPACE TO START", core.ColorWhite)

	p := snap.Player
	p.X = (snap.World.Width - p.W) / 2
	p.Y = snap.World.FloorY - p.H
	p.Inverted = false
	drawPlayer(dst, v, p, false)

	dst.DrawTextCentered(h-2, fmt.Sprintf("HIGH SCORE: %d", snap.HighScore), core.ColorBrightYellow)
	if snap.AssetError != "" {
		dst.DrawTextCentered(h-1, snap.AssetError, core.ColorBrightRed)
	}
}

func drawTutorial(dst *core.Screen, v viewport, snap Snapshot) {
	t := snap.Tutorial
	mid := snap.World.Height / 2

	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		y := mid - t.Scroll + float64(i*tutorialSpacing)
		if y < 0 || y >= snap.World.Height {
			continue
		}
		dst.DrawTextCentered(v.row(y), line, core.ColorWhite)
	}

	total := float64(len(t.Lines) * tutorialSpacing)
	if t.Scroll > total/2 {
		y := math.Max(mid, mid-t.Scroll+total+50)
		c := core.ColorGray
		if t.Ready {
			c = core.ColorBrightWhite
		}
		dst.DrawTextCentered(v.row(y), "Press SPACE to continue", c)
	}
	dst.DrawText(1, dst.Height()-1, "[S] skip")
}

func drawGameOver(dst *core.Screen, v viewport, snap Snapshot) {
	hw := snap.World.Height
	dst.DrawTextCentered(v.row(hw/3), "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(v.row(hw/2), fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)
	dst.DrawTextCentered(v.row(hw/2)+1, "Time Alive: "+clock.FormatSeconds(ms(snap.AliveMs))+"s", core.ColorWhite)

	row := v.row(hw - 100)
	if snap.RestartInMs > 0 {
		dst.DrawTextCentered(row, clock.FormatSeconds(ms(snap.RestartInMs)), core.ColorGray)
	} else {
		dst.DrawTextCentered(row, "Press SPACE to restart", core.ColorBrightWhite)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorGray)
}

func ms(n int64) time.Duration {
	return time.Duration(n) * time.Millisecond
}
