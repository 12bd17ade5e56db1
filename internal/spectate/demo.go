package spectate

import (
	"context"
	"time"

	"github.com/vovakirdan/noseas/internal/core"
	"github.com/vovakirdan/noseas/internal/games/noseas"
)

// jumpLead is how far ahead of the player, in world pixels, the autopilot
// reacts to a dangerous obstacle.
const jumpLead = 90

// Driver is a game the demo loop can steer. *noseas.Game implements it.
type Driver interface {
	Step(in core.InputFrame) core.StepResult
	Snapshot() noseas.Snapshot
}

// Autopilot picks the input for the next tick from a snapshot. It starts
// runs, skips the tutorial and jumps over anything dangerous in its path.
func Autopilot(snap noseas.Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	switch snap.Mode {
	case "menu":
		if snap.Tutorial != nil {
			in.Set(core.ActionSkip)
			return in
		}
		if snap.AssetError == "" {
			in.Set(core.ActionJump)
		}
	case "gameover":
		if snap.RestartInMs == 0 {
			in.Set(core.ActionJump)
		}
	case "playing":
		if snap.Transition || snap.Player.Phasing || snap.Blessed {
			return in
		}
		p := snap.Player
		if p.Animation == "JUMP" {
			return in
		}
		front := p.X + p.W
		for _, o := range snap.Items {
			if o.Kind == "CHEST" {
				continue
			}
			gap := o.Rect.X - front
			if gap >= 0 && gap <= jumpLead {
				in.Set(core.ActionJump)
				break
			}
		}
	}
	return in
}

// RunDemo drives game with the autopilot at tickRate and publishes every
// frame to hub until ctx is cancelled. Events are passed to onEvent when it
// is not nil.
func RunDemo(ctx context.Context, game Driver, hub *Hub, tickRate int, onEvent func(core.Event)) error {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			DemoStep(game, hub, onEvent)
		}
	}
}

// DemoStep runs one autopilot tick.
func DemoStep(game Driver, hub *Hub, onEvent func(core.Event)) {
	res := game.Step(Autopilot(game.Snapshot()))
	if onEvent != nil {
		for _, ev := range res.Events {
			onEvent(ev)
		}
	}
	hub.Publish(game.Snapshot())
}
