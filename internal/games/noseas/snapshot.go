package noseas

import (
	"math"
	"time"

	"github.com/vovakirdan/noseas/internal/assets"
)

// Snapshot is a read-only copy of everything a renderer needs for a frame.
// It is safe to hand to another goroutine and serializes to JSON or msgpack.
type Snapshot struct {
	Mode      string  `json:"mode" msgpack:"mode"`
	Score     int     `json:"score" msgpack:"score"`
	HighScore int     `json:"high_score" msgpack:"high_score"`
	Speed     float64 `json:"speed" msgpack:"speed"`
	AliveMs   int64   `json:"alive_ms" msgpack:"alive_ms"`

	World  WorldView      `json:"world" msgpack:"world"`
	Player PlayerView     `json:"player" msgpack:"player"`
	Items  []ObstacleView `json:"obstacles" msgpack:"obstacles"`
	Fading []RectView     `json:"fading" msgpack:"fading"`
	// Background tile x positions.
	Backgrounds []float64 `json:"backgrounds" msgpack:"backgrounds"`

	Perk            string `json:"perk,omitempty" msgpack:"perk,omitempty"`
	PerkStage       string `json:"perk_stage,omitempty" msgpack:"perk_stage,omitempty"`
	PerkRemainingMs int64  `json:"perk_remaining_ms" msgpack:"perk_remaining_ms"`

	Blessed             bool  `json:"blessed" msgpack:"blessed"`
	BlessingRemainingMs int64 `json:"blessing_remaining_ms" msgpack:"blessing_remaining_ms"`
	Transition          bool  `json:"transition" msgpack:"transition"`

	// Guide is "active" while SkyWalk holds, "pending" during its
	// transitions and empty otherwise.
	Guide         string  `json:"guide,omitempty" msgpack:"guide,omitempty"`
	Portal        string  `json:"portal,omitempty" msgpack:"portal,omitempty"` // "entry" or "exit"
	PortalY       float64 `json:"portal_y" msgpack:"portal_y"`
	PortalOpacity float64 `json:"portal_opacity" msgpack:"portal_opacity"`

	Banner      string        `json:"banner,omitempty" msgpack:"banner,omitempty"`
	Tutorial    *TutorialView `json:"tutorial,omitempty" msgpack:"tutorial,omitempty"`
	RestartInMs int64         `json:"restart_in_ms" msgpack:"restart_in_ms"`
	AssetError  string        `json:"asset_error,omitempty" msgpack:"asset_error,omitempty"`
}

// WorldView describes the fixed geometry.
type WorldView struct {
	Width    float64 `json:"width" msgpack:"width"`
	Height   float64 `json:"height" msgpack:"height"`
	FloorY   float64 `json:"floor_y" msgpack:"floor_y"`
	CeilingY float64 `json:"ceiling_y" msgpack:"ceiling_y"`
}

// RectView is an axis-aligned box with an opacity.
type RectView struct {
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	W       float64 `json:"w" msgpack:"w"`
	H       float64 `json:"h" msgpack:"h"`
	Opacity float64 `json:"opacity" msgpack:"opacity"`
}

// PlayerView is the drawable player.
type PlayerView struct {
	RectView
	Inverted  bool   `json:"inverted" msgpack:"inverted"`
	Phasing   bool   `json:"phasing" msgpack:"phasing"`
	Animation string `json:"animation" msgpack:"animation"`
	Frame     int    `json:"frame" msgpack:"frame"`
	SourceX   int    `json:"source_x" msgpack:"source_x"`
}

// ObstacleView is one drawable obstacle.
type ObstacleView struct {
	Kind     string   `json:"kind" msgpack:"kind"`
	Rect     RectView `json:"rect" msgpack:"rect"`
	Rotation float64  `json:"rotation" msgpack:"rotation"`
	Taunt    string   `json:"taunt,omitempty" msgpack:"taunt,omitempty"`
}

// TutorialView is the overlay state.
type TutorialView struct {
	Lines  []string `json:"lines" msgpack:"lines"`
	Scroll float64  `json:"scroll" msgpack:"scroll"`
	Ready  bool     `json:"ready" msgpack:"ready"`
}

// chestDimOpacity is applied to chests while a perk already occupies the slot.
const chestDimOpacity = 0.3

// Snapshot captures the session at now. sheet is the player's current
// sprite strip and is used only for SourceX.
func (s *Session) Snapshot(now time.Time, sheet assets.Sheet) Snapshot {
	p := &s.Player
	snap := Snapshot{
		Mode:      s.Mode.String(),
		Score:     s.Score,
		HighScore: s.HighScore,
		Speed:     s.ramp.Speed(),
		AliveMs:   s.Alive(now).Milliseconds(),
		World: WorldView{
			Width:    s.cfg.World.Width,
			Height:   s.cfg.World.Height,
			FloorY:   s.cfg.World.FloorY(),
			CeilingY: s.cfg.World.CeilingY,
		},
		Player: PlayerView{
			RectView:  RectView{X: p.X, Y: p.Y, W: p.Width, H: p.Height, Opacity: p.Opacity},
			Inverted:  p.IsInverted,
			Phasing:   p.IsPhasing,
			Animation: p.Animation.String(),
			Frame:     p.Frame,
			SourceX:   sheet.SourceX(p.Frame),
		},
		Items:       make([]ObstacleView, 0, len(s.Obstacles)),
		Fading:      make([]RectView, 0, len(s.Fading)),
		Backgrounds: make([]float64, 0, len(s.Backgrounds)),
		Blessed:     s.Blessed(now),
		Transition:  s.Perks.Transitioning,
		Banner:      s.Perks.BannerText,
	}

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		v := ObstacleView{
			Kind:     o.Kind.String(),
			Rect:     RectView{X: o.X, Y: o.Y, W: o.Width, H: o.Height, Opacity: 1},
			Rotation: o.Rotation,
		}
		if o.IsPerk && s.Perks.Active != nil {
			v.Rect.Opacity = chestDimOpacity
		}
		if o.TauntVisible(s.cfg.World.Width) {
			v.Taunt = o.Taunt
		}
		snap.Items = append(snap.Items, v)
	}
	for _, f := range s.Fading {
		snap.Fading = append(snap.Fading, RectView{X: f.X, Y: f.Y, W: f.Width, H: f.Height, Opacity: f.Opacity})
	}
	for _, b := range s.Backgrounds {
		snap.Backgrounds = append(snap.Backgrounds, b.X)
	}

	if snap.Blessed {
		snap.BlessingRemainingMs = s.Perks.Blessing.Remaining(now).Milliseconds()
	}

	if a := s.Perks.Active; a != nil {
		snap.Perk = a.Kind.String()
		snap.PerkStage = a.Stage.String()
		snap.PerkRemainingMs = a.Remaining(now).Milliseconds()
		if a.Kind == PerkSkyWalk {
			s.fillSkyWalkVisuals(&snap, a, now)
		}
	}

	if s.Tutorial.Visible {
		snap.Tutorial = &TutorialView{
			Lines:  append([]string(nil), s.Tutorial.Lines...),
			Scroll: s.Tutorial.Scroll,
			Ready:  s.Tutorial.Ready(),
		}
	}
	if s.Mode == ModeGameOver {
		snap.RestartInMs = s.RestartIn(now).Milliseconds()
	}
	if s.AssetErr != nil {
		snap.AssetError = s.AssetErr.Error()
	}
	return snap
}

// fillSkyWalkVisuals sets the guide line and the portal pulse shown while
// the player moves between floor and ceiling.
func (s *Session) fillSkyWalkVisuals(snap *Snapshot, a *ActivePerk, now time.Time) {
	if a.Stage == StageHold {
		snap.Guide = "active"
		return
	}
	snap.Guide = "pending"

	t := float64(s.cfg.Perks.Transition())
	if t <= 0 {
		return
	}
	var prog float64
	if a.Stage == StageEnter {
		snap.Portal = "entry"
		snap.PortalY = s.cfg.World.CeilingY
		prog = float64(now.Sub(a.Start)) / t
	} else {
		snap.Portal = "exit"
		snap.PortalY = s.cfg.World.FloorY()
		prog = 1 - float64(a.Remaining(now))/t
	}
	prog = math.Max(0, math.Min(1, prog))
	snap.PortalOpacity = math.Sin(prog*math.Pi) * 0.8
}
