// Package viewport tracks which rows of the laid out document are on
// screen.
package viewport

// Viewport is a window of Height rows over Rows laid out rows.
type Viewport struct {
	height int
	rows   int
	top    int
	margin int
}

// New creates a viewport of the given height.
func New(height int) *Viewport {
	return &Viewport{height: max(height, 0)}
}

// Height returns the number of visible rows.
func (v *Viewport) Height() int {
	return v.height
}

// Top returns the first visible row.
func (v *Viewport) Top() int {
	return v.top
}

// Rows returns the number of laid out rows.
func (v *Viewport) Rows() int {
	return v.rows
}

// Resize changes the visible height.
func (v *Viewport) Resize(height int) {
	v.height = max(height, 0)
	v.clamp()
}

// SetRows records the laid out row count after a layout.
func (v *Viewport) SetRows(rows int) {
	v.rows = max(rows, 0)
	v.clamp()
}

// SetMargin sets the number of rows kept visible around a revealed range.
func (v *Viewport) SetMargin(rows int) {
	v.margin = max(rows, 0)
}

func (v *Viewport) maxTop() int {
	return max(v.rows-v.height, 0)
}

func (v *Viewport) clamp() {
	v.top = min(max(v.top, 0), v.maxTop())
}

// ScrollTo makes row the first visible row, as far as the content allows.
func (v *Viewport) ScrollTo(row int) {
	v.top = row
	v.clamp()
}

// ScrollBy scrolls by delta rows, negative is up. It reports whether the
// view moved.
func (v *Viewport) ScrollBy(delta int) bool {
	before := v.top
	v.ScrollTo(v.top + delta)
	return v.top != before
}

// Visible reports whether row is on screen.
func (v *Viewport) Visible(row int) bool {
	return row >= v.top && row < v.top+v.height
}

// ToScreen converts a layout row to a screen row. ok is false when the
// row is off screen.
func (v *Viewport) ToScreen(row int) (int, bool) {
	return row - v.top, v.Visible(row)
}

// FromScreen converts a screen row to a layout row.
func (v *Viewport) FromScreen(y int) int {
	return v.top + y
}

// EnsureVisible scrolls the least amount that shows rows [start, end),
// keeping the margin where the content allows. A range taller than the
// view shows its first row. It reports whether the view moved.
func (v *Viewport) EnsureVisible(start, end int) bool {
	if end <= start || v.height == 0 {
		return false
	}
	before := v.top
	margin := min(v.margin, max((v.height-(end-start))/2, 0))

	switch {
	case end-start > v.height:
		v.top = start
	case start-margin < v.top:
		v.top = start - margin
	case end+margin > v.top+v.height:
		v.top = end + margin - v.height
	}
	v.clamp()
	return v.top != before
}
