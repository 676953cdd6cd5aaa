// Package loop provides the editor's event-scheduling loop.
//
// A Loop drains input from a Source, dispatches dual-rate Update and
// Render events gated by FrameTimers, and drives a cancellable shutdown
// handshake. Handlers never mutate loop state directly: every dispatch
// returns a Command that the loop merges into its pending request set.
//
// Each iteration runs these phases in order:
//
//   - Drain: every pending input event is dispatched as an Input event.
//   - Update: one Update if the update timer is due or an update was
//     requested.
//   - Render: one Render if the render timer is due or a redraw was
//     requested.
//   - Exit: a pending exit outcome is offered to the handler as an
//     ExitRequested event. Unless the reply cancels it, Exiting is
//     dispatched and Run returns the outcome.
//   - Idle: when nothing was dispatched and Settings.IdleWait is
//     positive, the loop waits on the source for at most IdleWait, never
//     past the next periodic deadline. A zero IdleWait polls continuously.
//
// The loop is single-threaded. Handlers run to completion before the next
// phase begins.
package loop
