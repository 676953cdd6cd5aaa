package loop

import (
	"time"

	"github.com/dshills/quill/internal/renderer/backend"
)

// Kind identifies a dispatched loop event.
type Kind int

const (
	// Begin is dispatched once before the first iteration.
	Begin Kind = iota
	// Input carries one terminal event.
	Input
	// Update is the logic tick.
	Update
	// Render is the drawing tick.
	Render
	// ExitRequested offers a pending exit to the handler, which may
	// cancel it.
	ExitRequested
	// Exiting is the last event of a run.
	Exiting
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case Input:
		return "input"
	case Update:
		return "update"
	case Render:
		return "render"
	case ExitRequested:
		return "exit-requested"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Event is what the loop hands to its Handler.
type Event struct {
	Kind Kind

	// Input is set for Input events.
	Input backend.Event

	// Settings is set for Begin. Changes made through it take effect
	// before the first iteration.
	Settings *Settings

	// Outcome is set for ExitRequested and Exiting.
	Outcome Outcome
}

// Settings configures loop scheduling.
type Settings struct {
	UpdateRate FrameRate
	RenderRate FrameRate

	// IdleWait bounds how long an idle iteration waits on the source.
	// Zero disables waiting.
	IdleWait time.Duration
}

// DefaultSettings renders at roughly 60 frames per second, updates on
// demand and idles in 16ms slices.
func DefaultSettings() Settings {
	return Settings{
		UpdateRate: OnDemand,
		RenderRate: Every(16 * time.Millisecond),
		IdleWait:   16 * time.Millisecond,
	}
}
