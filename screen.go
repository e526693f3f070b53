package vtscreen

import "image/color"

const (
	// DefaultRows is the default number of screen rows.
	DefaultRows = 24
	// DefaultCols is the default number of screen columns.
	DefaultCols = 80
)

// Buffer indices. The alternate buffer is lazily allocated.
const (
	bufPrimary = 0
	bufAlt     = 1
)

// Prop identifies a terminal property delivered through SetTermProp.
type Prop int

const (
	PropCursorVisible Prop = iota
	PropCursorBlink
	PropAltScreen
	PropTitle
	PropIconName
	PropReverse
	PropCursorShape
	PropMouse
	PropFocusReport
)

// PropValue carries the payload of a property change. Exactly one field
// is meaningful for any given property.
type PropValue struct {
	Bool   bool
	Int    int
	String string
}

// LineInfo describes per-row display state maintained alongside the
// grid. Continuation marks a row whose content logically continues the
// row above due to a wrap; it is the key reflow signal.
type LineInfo struct {
	Continuation bool
	DoubleWidth  bool
	DoubleHeight int // 0 none, 1 top half, 2 bottom half
}

// Screen is the authoritative cell-grid model of a terminal. It
// consumes interpreted terminal commands (glyphs, cursor moves, scroll
// operations, pen changes, line-info updates) from a state layer,
// maintains primary and alternate grids, accumulates damage rectangles
// for the host, and exchanges rows with host scrollback on scroll and
// resize.
//
// A Screen is owned by exactly one goroutine at a time; it performs no
// locking and no I/O. All provider callbacks run synchronously on the
// caller's goroutine.
type Screen struct {
	rows int
	cols int

	damageMerge DamageMerge
	damage      damageState
	emitting    bool

	globalReverse bool
	reflow        bool
	withConPTY    bool

	// buffers[bufAlt] is nil until alternate mode is first enabled.
	buffers  [2][]cell
	lineinfo [2][]LineInfo
	active   int

	// Staging row reused for scrollback serialization; contents are
	// undefined between calls.
	sbBuffer []ScreenCell

	pen Pen

	defaultFg color.RGBA
	defaultBg color.RGBA

	damageProvider DamageProvider
	cursorProvider CursorProvider
	propProvider   PropProvider
	bellProvider   BellProvider
	resizeProvider ResizeProvider
	scrollback     ScrollbackProvider
}

// Option configures a Screen during construction.
type Option func(*Screen)

// WithSize sets the screen dimensions.
// Default is 24 rows by 80 columns.
func WithSize(rows, cols int) Option {
	return func(s *Screen) {
		if rows > 0 {
			s.rows = rows
		}
		if cols > 0 {
			s.cols = cols
		}
	}
}

// WithDamageMerge sets the damage coalescing level.
// Default is DamageCell.
func WithDamageMerge(merge DamageMerge) Option {
	return func(s *Screen) {
		s.damageMerge = merge
	}
}

// WithReflow enables paragraph-aware rewrapping on resize. When off,
// resize truncates or pads each row in place.
func WithReflow(on bool) Option {
	return func(s *Screen) {
		s.reflow = on
	}
}

// WithConPTY suppresses scrollback refill on resize; the host console
// manages reflow of scrolled-out content itself.
func WithConPTY(on bool) Option {
	return func(s *Screen) {
		s.withConPTY = on
	}
}

// WithDefaultColors sets the concrete colors substituted for the
// default foreground and background sentinels during rendering.
func WithDefaultColors(fg, bg color.RGBA) Option {
	return func(s *Screen) {
		s.defaultFg = fg
		s.defaultBg = bg
	}
}

// WithDamage sets the damage provider.
func WithDamage(p DamageProvider) Option {
	return func(s *Screen) {
		s.damageProvider = p
	}
}

// WithCursor sets the cursor provider.
func WithCursor(p CursorProvider) Option {
	return func(s *Screen) {
		s.cursorProvider = p
	}
}

// WithProp sets the terminal property provider.
func WithProp(p PropProvider) Option {
	return func(s *Screen) {
		s.propProvider = p
	}
}

// WithBell sets the bell provider.
func WithBell(p BellProvider) Option {
	return func(s *Screen) {
		s.bellProvider = p
	}
}

// WithResize sets the resize provider.
func WithResize(p ResizeProvider) Option {
	return func(s *Screen) {
		s.resizeProvider = p
	}
}

// WithScrollback sets the scrollback storage. Without it the screen
// never serializes rows: lines scrolled off the top are discarded and
// resize neither spills to nor refills from scrollback.
func WithScrollback(p ScrollbackProvider) Option {
	return func(s *Screen) {
		s.scrollback = p
	}
}

// New creates a screen with the primary grid allocated and blank.
func New(opts ...Option) *Screen {
	s := &Screen{
		rows:           DefaultRows,
		cols:           DefaultCols,
		damageMerge:    DamageCell,
		defaultFg:      DefaultForeground,
		defaultBg:      DefaultBackground,
		damageProvider: NoopDamage{},
		cursorProvider: NoopCursor{},
		propProvider:   NoopProp{},
		bellProvider:   NoopBell{},
		resizeProvider: NoopResize{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.pen = NewPen()
	s.damage.reset()

	s.buffers[bufPrimary] = allocBuffer(s.rows, s.cols)
	s.lineinfo[bufPrimary] = make([]LineInfo, s.rows)
	s.active = bufPrimary

	s.sbBuffer = make([]ScreenCell, s.cols)

	return s
}

// allocBuffer creates a blank row-major grid of rows by cols cells.
func allocBuffer(rows, cols int) []cell {
	return make([]cell, rows*cols)
}

// Rows returns the screen height in rows.
func (s *Screen) Rows() int {
	return s.rows
}

// Cols returns the screen width in columns.
func (s *Screen) Cols() int {
	return s.cols
}

// IsAltScreen returns true if the alternate grid is active.
func (s *Screen) IsAltScreen() bool {
	return s.active == bufAlt
}

// Pen returns the current pen register.
func (s *Screen) Pen() Pen {
	return s.pen
}

// LineInfo returns the line info of a row on the active grid. Returns
// the zero value for an out-of-bounds row.
func (s *Screen) LineInfo(row int) LineInfo {
	if row < 0 || row >= s.rows {
		return LineInfo{}
	}
	return s.lineinfo[s.active][row]
}

// cellAt returns the cell at (row, col) on the active grid, or nil if
// out of bounds.
func (s *Screen) cellAt(row, col int) *cell {
	if row < 0 || row >= s.rows {
		return nil
	}
	if col < 0 || col >= s.cols {
		return nil
	}
	return &s.buffers[s.active][s.cols*row+col]
}

// cellIn is cellAt on an explicit buffer.
func (s *Screen) cellIn(bufidx, row, col int) *cell {
	if row < 0 || row >= s.rows {
		return nil
	}
	if col < 0 || col >= s.cols {
		return nil
	}
	return &s.buffers[bufidx][s.cols*row+col]
}

// EnableAltScreen pre-allocates the alternate grid. SetTermProp with
// PropAltScreen enabled calls it as well, so pre-allocation is
// optional. Idempotent.
func (s *Screen) EnableAltScreen() {
	if s.buffers[bufAlt] == nil {
		s.buffers[bufAlt] = allocBuffer(s.rows, s.cols)
		s.lineinfo[bufAlt] = make([]LineInfo, s.rows)
	}
}

// SetDefaultColors replaces the concrete colors substituted for the
// default foreground and background sentinels. Cells written with
// default colors pick up the new values on the next render, so the
// whole screen is damaged.
func (s *Screen) SetDefaultColors(fg, bg color.RGBA) {
	s.defaultFg = fg
	s.defaultBg = bg
	s.damageScreen()
}

// ensureSbBuffer grows the scrollback staging row to at least cols.
func (s *Screen) ensureSbBuffer(cols int) {
	if len(s.sbBuffer) < cols {
		s.sbBuffer = make([]ScreenCell, cols)
	}
}
