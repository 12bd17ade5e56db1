package noseas

import (
	"math"
	"strings"

	"github.com/vovakirdan/noseas/internal/config"
)

// Tutorial is the first-run scrolling text shown over the menu.
type Tutorial struct {
	Lines   []string
	Scroll  float64
	Visible bool

	cfg    config.TutorialConfig
	origin float64
}

func newTutorial(cfg config.TutorialConfig, worldH float64, seen bool) Tutorial {
	t := Tutorial{
		Lines:  strings.Split(cfg.Text, "\n"),
		cfg:    cfg,
		origin: -worldH / 2,
	}
	if !seen {
		t.Open()
	}
	return t
}

// Open shows the overlay from the top.
func (t *Tutorial) Open() {
	t.Visible = true
	t.Scroll = t.origin
}

// Close hides the overlay.
func (t *Tutorial) Close() {
	t.Visible = false
}

// Update scrolls one tick, stopping at the end position.
func (t *Tutorial) Update() {
	if !t.Visible {
		return
	}
	t.Scroll = math.Min(t.Scroll+t.cfg.ScrollSpeed, t.end())
}

// Ready reports whether Start may dismiss the overlay.
func (t *Tutorial) Ready() bool {
	return t.Scroll >= t.height()+t.cfg.ReadyPad
}

func (t *Tutorial) height() float64 {
	return float64(len(t.Lines)) * t.cfg.LineHeight
}

func (t *Tutorial) end() float64 {
	return t.height() + t.cfg.EndPad
}
