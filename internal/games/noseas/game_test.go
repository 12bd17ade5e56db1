package noseas

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/noseas/internal/clock"
	"github.com/vovakirdan/noseas/internal/config"
	"github.com/vovakirdan/noseas/internal/core"
)

func newTestGame(t *testing.T, seed int64, profile core.Profile) (*Game, *clock.Manual) {
	t.Helper()
	mc := clock.NewManual(epoch)
	g := NewWithClock(mc)
	g.SetConfig(config.DefaultNoSeasConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed, Profile: profile})
	return g, mc
}

func TestGameDeterminism(t *testing.T) {
	// Two games with the same seed and inputs must stay identical.
	g1, c1 := newTestGame(t, 42, core.Profile{TutorialSeen: true})
	g2, c2 := newTestGame(t, 42, core.Profile{TutorialSeen: true})

	in := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		in.Clear()
		if i == 0 || i%45 == 0 {
			in.Set(core.ActionJump)
		}
		c1.Advance(tick)
		c2.Advance(tick)
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestGameStartsFromMenu(t *testing.T) {
	g, mc := newTestGame(t, 1, core.Profile{TutorialSeen: true, HighScore: 9})

	if g.Session().Mode != ModeMenu {
		t.Fatalf("Mode = %v, want menu", g.Session().Mode)
	}
	if st := g.State(); st.HighScore != 9 || st.GameOver {
		t.Errorf("State = %+v", st)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	mc.Advance(tick)
	g.Step(in)

	if g.Session().Mode != ModePlaying {
		t.Errorf("Mode = %v, want playing", g.Session().Mode)
	}
}

func TestGamePauseFreezesTime(t *testing.T) {
	g, mc := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	start := core.NewInputFrame()
	start.Set(core.ActionJump)
	g.Step(start)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("not paused")
	}

	frozen := g.Now()
	alive := g.Snapshot().AliveMs
	mc.Advance(5 * time.Second)
	g.Step(core.NewInputFrame())

	if !g.Now().Equal(frozen) {
		t.Errorf("game time moved while paused: %v", g.Now().Sub(frozen))
	}
	if got := g.Snapshot().AliveMs; got != alive {
		t.Errorf("AliveMs = %d while paused, want %d", got, alive)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause did not resume")
	}
	mc.Advance(tick)
	if got := g.Now().Sub(frozen); got != tick {
		t.Errorf("time after resume advanced %v, want %v", got, tick)
	}
}

func TestPauseIgnoredOutsidePlay(t *testing.T) {
	g, _ := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if g.State().Paused {
		t.Error("paused at the menu")
	}
}

func TestGameReportsGameOverEvent(t *testing.T) {
	g, mc := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)

	s := g.Session()
	barrel := s.Spawner().Build(KindBarrel, g.Now())
	barrel.X = s.Player.X + 10
	s.Obstacles = []Obstacle{barrel}

	mc.Advance(tick)
	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver {
		t.Fatal("collision did not end the run")
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventGameOver {
		t.Errorf("events = %v", res.Events)
	}
}

func TestSnapshotFrameSource(t *testing.T) {
	g, _ := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	g.Session().Player.Frame = 3

	snap := g.Snapshot()
	// The default run sheet is 480px wide with six frames.
	if snap.Player.SourceX != 240 {
		t.Errorf("SourceX = %d, want 240", snap.Player.SourceX)
	}
	if snap.Player.Animation != "RUN" {
		t.Errorf("Animation = %q, want RUN", snap.Player.Animation)
	}
}

const fourFrameManifest = `
sheets:
  run: {frames: 4, width: 320, height: 80}
  jump: {frames: 4, width: 320, height: 80}
  background: {frames: 1, width: 1000, height: 500}
  barrel: {frames: 1, width: 50, height: 50}
  crate: {frames: 1, width: 50, height: 50}
  chest: {frames: 1, width: 50, height: 50}
  attack: {frames: 1, width: 60, height: 76}
`

func TestSpriteFramesFollowManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	if err := os.WriteFile(path, []byte(fourFrameManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	SetAssetsPath(path)
	t.Cleanup(func() { SetAssetsPath("") })

	g, mc := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	if g.Session().AssetErr != nil {
		t.Fatalf("manifest rejected: %v", g.Session().AssetErr)
	}

	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		mc.Advance(tick)
		g.Step(core.NewInputFrame())
		snap := g.Snapshot()
		if snap.Player.SourceX < 0 || snap.Player.SourceX+80 > 320 {
			t.Fatalf("tick %d: SourceX = %d, outside the 320px sheet", i, snap.Player.SourceX)
		}
		seen[snap.Player.SourceX] = true
	}
	for _, x := range []int{0, 80, 160, 240} {
		if !seen[x] {
			t.Errorf("frame at SourceX %d never shown", x)
		}
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("hard")
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", difficultyPreset)
	}
	SetDifficultyPreset("nightmare")
	if difficultyPreset != "" {
		t.Errorf("unknown preset kept as %q", difficultyPreset)
	}
}

func renderText(g *Game) string {
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	return screen.String()
}

func TestRenderScreens(t *testing.T) {
	g, mc := newTestGame(t, 1, core.Profile{HighScore: 31})

	if out := renderText(g); !strings.Contains(out, "[S] skip") {
		t.Errorf("tutorial screen missing skip hint:\n%s", out)
	}

	skip := core.NewInputFrame()
	skip.Set(core.ActionSkip)
	g.Step(skip)
	out := renderText(g)
	for _, want := range []string{"PRESS SPACE TO START", "HIGH SCORE: 31"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu missing %q:\n%s", want, out)
		}
	}

	start := core.NewInputFrame()
	start.Set(core.ActionJump)
	g.Step(start)
	mc.Advance(tick)
	g.Step(core.NewInputFrame())
	out = renderText(g)
	for _, want := range []string{"No Perks Active", "Speed: 1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q:\n%s", want, out)
		}
	}

	g.Session().ActivatePerk(PerkShrink, g.Now())
	if out := renderText(g); !strings.Contains(out, "SHRINK: ") {
		t.Errorf("HUD missing perk countdown:\n%s", out)
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if out := renderText(g); !strings.Contains(out, "PAUSED") {
		t.Errorf("pause overlay missing:\n%s", out)
	}
	g.Step(pause)

	g.Session().die(g.Now())
	out = renderText(g)
	for _, want := range []string{"GAME OVER", "Score: 0", "Time Alive: "} {
		if !strings.Contains(out, want) {
			t.Errorf("game over missing %q:\n%s", want, out)
		}
	}
	mc.Advance(time.Second)
	if out := renderText(g); !strings.Contains(out, "Press SPACE to restart") {
		t.Errorf("restart prompt missing after delay:\n%s", out)
	}
}

func TestRenderSkipsBrokenObstacle(t *testing.T) {
	g, _ := newTestGame(t, 1, core.Profile{TutorialSeen: true})
	start := core.NewInputFrame()
	start.Set(core.ActionJump)
	g.Step(start)

	snap := g.Snapshot()
	snap.Items = append(snap.Items, ObstacleView{
		Kind: "KRAKEN",
		Rect: RectView{X: 700, Y: 350, W: 50, H: 50, Opacity: 1},
	})

	screen := core.NewScreen(80, 24)
	RenderSnapshot(screen, snap)

	if !strings.Contains(screen.String(), "No Perks Active") {
		t.Error("frame not rendered after a broken obstacle")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g, _ := newTestGame(t, 1, core.Profile{})
	for _, size := range [][2]int{{1, 1}, {10, 3}, {200, 60}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen)
	}
}
