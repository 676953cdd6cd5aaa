// Package cursor turns movement and editing intents into document edits
// and cursor updates.
//
// A Controller owns the cursor position, the sticky desired column used by
// vertical movement and the viewport anchor. Every operation leaves the
// cursor on an existing line at a column no greater than that line's
// length, then shifts the viewport by the minimum needed to keep the
// cursor visible.
//
// Indices that fall outside the document make an edit a silent no-op.
package cursor
