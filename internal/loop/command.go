package loop

// Command is a handler's reply to one dispatched event. The loop merges
// it into its pending requests once the handler returns.
type Command struct {
	// Update asks for an Update dispatch.
	Update bool

	// Redraw asks for a Render dispatch.
	Redraw bool

	// Exit proposes a shutdown with the given outcome. A later proposal
	// replaces an earlier pending one.
	Exit *Outcome

	// Cancel vetoes the exit being offered. It only has meaning in reply
	// to an ExitRequested event.
	Cancel bool
}

// None returns an empty command.
func None() Command {
	return Command{}
}

// Proceed lets an offered exit go ahead.
func Proceed() Command {
	return Command{}
}

// RequestUpdate asks for an Update dispatch.
func RequestUpdate() Command {
	return Command{Update: true}
}

// RequestRedraw asks for a Render dispatch.
func RequestRedraw() Command {
	return Command{Redraw: true}
}

// RequestExit proposes a shutdown with outcome o.
func RequestExit(o Outcome) Command {
	return Command{Exit: &o}
}

// CancelExit vetoes the exit being offered.
func CancelExit() Command {
	return Command{Cancel: true}
}

// With combines two commands. Flags are OR-ed; other's exit proposal
// wins when both carry one.
func (c Command) With(other Command) Command {
	c.Update = c.Update || other.Update
	c.Redraw = c.Redraw || other.Redraw
	c.Cancel = c.Cancel || other.Cancel
	if other.Exit != nil {
		o := *other.Exit
		c.Exit = &o
	}
	return c
}

// IsNone reports whether the command asks for nothing.
func (c Command) IsNone() bool {
	return !c.Update && !c.Redraw && !c.Cancel && c.Exit == nil
}

// requests is the loop-owned pending request set. Reading a flag clears
// it, so repeated requests before a dispatch coalesce into one.
type requests struct {
	update bool
	redraw bool
	exit   *Outcome
}

func (r *requests) merge(c Command) {
	r.update = r.update || c.Update
	r.redraw = r.redraw || c.Redraw
	if c.Exit != nil {
		o := *c.Exit
		r.exit = &o
	}
}

func (r *requests) takeUpdate() bool {
	v := r.update
	r.update = false
	return v
}

func (r *requests) takeRedraw() bool {
	v := r.redraw
	r.redraw = false
	return v
}

func (r *requests) takeExit() (Outcome, bool) {
	if r.exit == nil {
		return Outcome{}, false
	}
	o := *r.exit
	r.exit = nil
	return o, true
}
