// Package app wires the quill editor together.
//
// An Application owns the document, the cursor controller, the viewport,
// the renderer and the terminal backend, and acts as the event loop's
// handler: input events become editing and scrolling operations, Render
// draws a frame, and Update polls for config file changes.
//
// Run always restores the terminal before returning, including when the
// loop fails.
package app
