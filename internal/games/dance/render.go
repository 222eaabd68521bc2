package dance

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-dance/internal/core"
	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

// Visual characters for rendering
const (
	LineChar  = '─'
	FloorChar = '·'
	laneGap   = 6 // columns between lane centers
	lineRow   = 3 // screen row of the judgment line
)

var laneColors = [rhythm.NumLanes]core.Color{
	rhythm.LaneLeft:  core.ColorBlue,
	rhythm.LaneDown:  core.ColorYellow,
	rhythm.LaneUp:    core.ColorGreen,
	rhythm.LaneRight: core.ColorMagenta,
}

// LaneColor returns the color a lane's cues are drawn in.
func LaneColor(l rhythm.Lane) core.Color {
	if !l.Valid() {
		return core.ColorDefault
	}
	return laneColors[l]
}

// layout maps playfield units to screen cells for one frame.
type layout struct {
	center int
	bottom int
	left0  float64 // anchor of the first lane
	left3  float64 // anchor of the last lane
}

func newLayout(dst *core.Screen, p rhythm.Profile) layout {
	return layout{
		center: dst.Width() / 2,
		bottom: dst.Height() - 2,
		left0:  p.LaneAnchors[rhythm.LaneLeft],
		left3:  p.LaneAnchors[rhythm.LaneRight],
	}
}

func (l layout) col(x float64) int {
	half := float64(laneGap*(rhythm.NumLanes-1)) / 2
	c := float64(l.center)
	return int(math.Round(core.Lerp(x, l.left0, l.left3, c-half, c+half)))
}

func (l layout) row(y float64) int {
	return int(math.Round(core.Lerp(y, rhythm.JudgmentLineY, rhythm.StartY, lineRow, float64(l.bottom))))
}

// Render draws the current state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()

	switch snap.State {
	case rhythm.StateMenu:
		g.drawMenu(dst, snap)
	case rhythm.StatePlaying:
		g.drawPlayfield(dst, snap)
	case rhythm.StatePaused:
		g.drawPlayfield(dst, snap)
		drawCenteredMessage(dst, core.ColorBrightYellow, "PAUSED",
			fmt.Sprintf("%s resume  |  %s menu", keyLabel(g.cfg.Controls.Pause), keyLabel(g.cfg.Controls.Back)))
	case rhythm.StateGameOver:
		g.drawGameOver(dst, snap)
	}
}

func (g *Game) drawPlayfield(dst *core.Screen, snap rhythm.Snapshot) {
	lay := newLayout(dst, snap.Profile)
	first := lay.col(lay.left0) - 3
	width := laneGap*(rhythm.NumLanes-1) + 7

	// HUD
	b := snap.Breakdown
	dst.DrawTextColor(2, 0, fmt.Sprintf("Score: %d", b.TotalScore), core.ColorWhite)
	dst.DrawTextColor(2, 1, fmt.Sprintf("Combo: %d", b.Combo), core.ColorBrightYellow)
	right := fmt.Sprintf("%s  Time: %2.0fs  Miss: %d/%d", snap.Profile.Name, math.Ceil(snap.Remaining), b.Miss, rhythm.MaxMisses)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right)-2, 0, right, core.ColorGray)

	// Lane guides below the line
	for y := lineRow + 1; y <= lay.bottom; y++ {
		for _, lane := range rhythm.Lanes {
			dst.SetColor(lay.col(snap.Profile.Anchor(lane)), y, FloorChar, core.ColorDarkGray)
		}
	}

	// Judgment line with ghost markers
	dst.DrawHLine(first, lineRow, width, LineChar, core.ColorGray)
	for _, lane := range rhythm.Lanes {
		dst.SetColor(lay.col(snap.Profile.Anchor(lane)), lineRow, lane.Glyph(), core.ColorDarkGray)
	}

	for _, c := range snap.Cues {
		if c.Hit {
			continue
		}
		r := lay.row(c.Position)
		if r < 1 || r > lay.bottom {
			continue
		}
		dst.SetColor(lay.col(c.X), r, c.Lane.Glyph(), LaneColor(c.Lane))
	}

	if g.cfg.Display.ShowFeedback {
		drawFeedback(dst, snap, lineRow+2)
	}
	drawCombo(dst, snap, first+width+3)
}

// drawFeedback shows the newest judgment, dimmed in the second half of
// its lifetime.
func drawFeedback(dst *core.Screen, snap rhythm.Snapshot, row int) {
	if len(snap.Feedback) == 0 {
		return
	}
	fb := snap.Feedback[len(snap.Feedback)-1]
	color := fb.Color
	if fb.Age(snap.Clock) > rhythm.FeedbackLifetime/2 && !fb.Far {
		color = core.ColorGray
	}
	dst.DrawTextCentered(row, fb.Text, color)
}

// drawCombo floats the newest combo count upward as it ages.
func drawCombo(dst *core.Screen, snap rhythm.Snapshot, col int) {
	if len(snap.ComboEffects) == 0 || snap.Breakdown.Combo < 2 {
		return
	}
	e := snap.ComboEffects[len(snap.ComboEffects)-1]
	age := snap.Clock - e.At
	row := lineRow + 6 - int(age*3)
	if row <= lineRow {
		return
	}
	color := core.ColorBrightYellow
	if e.Combo%rhythm.ComboBonusEvery == 0 {
		color = core.ColorGold
	}
	dst.DrawTextColor(col, row, fmt.Sprintf("%d COMBO", e.Combo), color)
}

func (g *Game) drawMenu(dst *core.Screen, snap rhythm.Snapshot) {
	h := dst.Height()
	top := core.Max(1, h/2-6)

	dst.DrawTextCentered(top, "← ↓ ↑ →", core.ColorBrightMagenta)
	dst.DrawTextCentered(top+1, "D A N C E", core.ColorGold)

	c := g.cfg.Controls
	for i, lvl := range rhythm.Levels {
		p := rhythm.ProfileFor(lvl)
		keys := c.Easy
		if lvl == rhythm.Normal {
			keys = c.Normal
		}
		line := fmt.Sprintf("%s. %s Mode", keyLabel(keys), p.Name)
		color := core.ColorWhite
		if lvl == snap.Level {
			line = "> " + line + " <"
			color = core.ColorBrightGreen
		}
		dst.DrawTextCentered(top+3+i*2, line, color)
		dst.DrawTextCentered(top+4+i*2, p.Description(), core.ColorGray)
	}

	lanes := fmt.Sprintf("Lanes: %s %s %s %s", keyLabel(c.Left), keyLabel(c.Down), keyLabel(c.Up), keyLabel(c.Right))
	dst.DrawTextCentered(top+8, lanes, core.ColorCyan)
	dst.DrawTextCentered(top+10,
		fmt.Sprintf("%s start  |  %s pause  |  %s quit", keyLabel(c.Start), keyLabel(c.Pause), keyLabel(c.Pause)),
		core.ColorGray)
}

func (g *Game) drawGameOver(dst *core.Screen, snap rhythm.Snapshot) {
	b := snap.Breakdown
	lines := []string{
		fmt.Sprintf("Score      %6d", b.TotalScore),
		fmt.Sprintf("Max Combo  %6d", b.MaxCombo),
		fmt.Sprintf("Perfect    %6d", b.Perfect),
		fmt.Sprintf("Good       %6d", b.Good),
		fmt.Sprintf("Miss       %6d", b.Miss),
		fmt.Sprintf("Accuracy  %6.2f%%", b.Accuracy),
	}
	type line struct {
		text  string
		color core.Color
	}
	extra := []line{}
	if g.hasBest {
		extra = append(extra, line{fmt.Sprintf("Best       %6d", g.best), core.ColorGray})
		if b.TotalScore > g.best {
			extra = append(extra, line{"NEW BEST!", core.ColorGold})
		}
	}
	if recent := lastHits(g.History(), recentHits); len(recent) > 0 {
		extra = append(extra, line{"", core.ColorDefault}, line{"Last hits", core.ColorCyan})
		for _, e := range recent {
			extra = append(extra, line{
				fmt.Sprintf("%-7s +%-4d x%-3d", e.Outcome, e.Score, e.Combo),
				e.Outcome.Color(),
			})
		}
	}

	c := g.cfg.Controls
	footer := fmt.Sprintf("%s restart  |  %s menu", keyLabel(c.Start), keyLabel(c.Pause))

	boxW := utf8.RuneCountInString(footer) + 4
	boxH := len(lines) + len(extra) + 6
	x := (dst.Width() - boxW) / 2
	y := core.Max(0, (dst.Height()-boxH)/2)
	box := core.NewRect(x, y, boxW, boxH)

	dst.DrawBox(box, core.ColorBrightRed)
	dst.DrawTextCentered(y+1, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(y+2, snap.Profile.Name, core.ColorGray)
	for i, l := range lines {
		dst.DrawTextCentered(y+3+i, l, core.ColorWhite)
	}
	for i, l := range extra {
		dst.DrawTextCentered(y+3+len(lines)+i, l.text, l.color)
	}
	dst.DrawTextCentered(y+boxH-2, footer, core.ColorGray)
}

// recentHits is how many history entries the game-over box lists.
const recentHits = 3

// lastHits returns up to n newest entries, newest first.
func lastHits(h []rhythm.HistoryEntry, n int) []rhythm.HistoryEntry {
	out := make([]rhythm.HistoryEntry, 0, n)
	for i := len(h) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h[i])
	}
	return out
}

func drawCenteredMessage(dst *core.Screen, color core.Color, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextCentered(boxY+1, title, color)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}

// keyLabel names the first binding of an action for on-screen hints.
func keyLabel(keys []string) string {
	if len(keys) == 0 {
		return "?"
	}
	switch k := keys[0]; k {
	case "left":
		return "←"
	case "down":
		return "↓"
	case "up":
		return "↑"
	case "right":
		return "→"
	case "esc":
		return "Esc"
	case "enter":
		return "Enter"
	case " ", "space":
		return "Space"
	default:
		return strings.ToUpper(k)
	}
}
