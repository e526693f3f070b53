package vtscreen

// DamageProvider receives redraw notifications from the screen.
type DamageProvider interface {
	// Damage is called when the cells inside rect have changed.
	Damage(rect Rect)
	// MoveRect is an optimization hint: the cells in src moved to dest.
	// Return true to signal the move was handled and the screen should
	// suppress the damage it would otherwise emit for dest.
	MoveRect(dest, src Rect) bool
}

// NoopDamage ignores all damage notifications.
type NoopDamage struct{}

func (NoopDamage) Damage(rect Rect)            {}
func (NoopDamage) MoveRect(dest, src Rect) bool { return false }

// CursorProvider receives cursor movement notifications.
type CursorProvider interface {
	// MoveCursor is called when the cursor moves from oldPos to pos.
	MoveCursor(pos, oldPos Pos, visible bool)
}

// NoopCursor ignores all cursor movements.
type NoopCursor struct{}

func (NoopCursor) MoveCursor(pos, oldPos Pos, visible bool) {}

// PropProvider receives terminal property changes.
type PropProvider interface {
	// SetProp is called when a terminal property changes.
	SetProp(prop Prop, val PropValue)
}

// NoopProp ignores all property changes.
type NoopProp struct{}

func (NoopProp) SetProp(prop Prop, val PropValue) {}

// BellProvider handles bell events.
type BellProvider interface {
	// Ring is called when a bell is requested.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// ResizeProvider receives dimension changes after they take effect.
type ResizeProvider interface {
	// Resize is called with the new dimensions.
	Resize(rows, cols int)
}

// NoopResize ignores all resize notifications.
type NoopResize struct{}

func (NoopResize) Resize(rows, cols int) {}

// ScrollbackProvider stores rows that scroll off the top of the primary
// buffer and hands them back during resize refill. Implementations can
// use in-memory storage, disk, database, etc. The cells slice passed to
// PushLine is reused by the screen between calls; implementations must
// copy it.
type ScrollbackProvider interface {
	// PushLine appends one row to scrollback.
	PushLine(cells []ScreenCell)
	// PeekLine reports the width and continuation flag of the most
	// recent stored row without removing it. ok is false when
	// scrollback is empty.
	PeekLine() (cols int, continuation bool, ok bool)
	// PopLine removes the most recent stored row, copying its cells
	// into out, and reports whether a row was available. out is always
	// at least as long as the width reported by PeekLine.
	PopLine(out []ScreenCell) bool
	// Clear discards all stored rows.
	Clear()
}

// ContinuationScrollbackProvider is an optional extension of
// ScrollbackProvider for hosts that track which scrollback rows are
// wrap continuations of the row above them. The screen detects the
// extension by type assertion and prefers it at every push site.
type ContinuationScrollbackProvider interface {
	ScrollbackProvider
	// PushLineWithContinuation appends one row together with its
	// continuation flag.
	PushLineWithContinuation(cells []ScreenCell, continuation bool)
}

// NoopScrollback discards all scrollback lines.
type NoopScrollback struct{}

func (NoopScrollback) PushLine(cells []ScreenCell)                 {}
func (NoopScrollback) PeekLine() (int, bool, bool)                 { return 0, false, false }
func (NoopScrollback) PopLine(out []ScreenCell) bool               { return false }
func (NoopScrollback) Clear()                                      {}

// Ensure implementations satisfy their interfaces.
var _ DamageProvider = NoopDamage{}
var _ CursorProvider = NoopCursor{}
var _ PropProvider = NoopProp{}
var _ BellProvider = NoopBell{}
var _ ResizeProvider = NoopResize{}
var _ ScrollbackProvider = NoopScrollback{}
