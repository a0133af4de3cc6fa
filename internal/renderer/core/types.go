// Package core provides the cell, style and colour types shared by the
// renderer and its backends.
package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video
	AttrStrikethrough
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color is a 24-bit colour or the terminal default.
type Color struct {
	R, G, B uint8
	// Default indicates the terminal's default colour; R, G and B are
	// ignored.
	Default bool
}

// ColorDefault represents the terminal's default colour.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a colour from components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rrggbb". An empty string is the default colour.
func ColorFromHex(hex string) (Color, error) {
	if hex == "" {
		return ColorDefault, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return ColorDefault, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// IsDefault reports whether this is the terminal default colour.
func (c Color) IsDefault() bool {
	return c.Default
}

// Hex returns "#rrggbb", or "default".
func (c Color) Hex() string {
	if c.Default {
		return "default"
	}
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Blend mixes c toward other in Lab space. t is clamped to [0, 1]. A
// default colour does not blend.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default || other.Default {
		return c
	}
	t = min(max(t, 0), 1)
	return fromColorful(c.colorful().BlendLab(other.colorful(), t))
}

// Lighten raises the Lab lightness by amount in [0, 1].
func (c Color) Lighten(amount float64) Color {
	if c.Default {
		return c
	}
	l, a, b := c.colorful().Lab()
	return fromColorful(colorful.Lab(min(l+amount, 1), a, b))
}

// Style combines colours and attributes.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's colours without attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with a foreground on the default background.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithForeground returns the style with fg.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns the style with bg.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns the style made bold.
func (s Style) Bold() Style {
	s.Attributes = s.Attributes.With(AttrBold)
	return s
}

// Dim returns the style made faint.
func (s Style) Dim() Style {
	s.Attributes = s.Attributes.With(AttrDim)
	return s
}

// Italic returns the style made italic.
func (s Style) Italic() Style {
	s.Attributes = s.Attributes.With(AttrItalic)
	return s
}

// Underline returns the style underlined.
func (s Style) Underline() Style {
	s.Attributes = s.Attributes.With(AttrUnderline)
	return s
}

// Reverse returns the style in reverse video.
func (s Style) Reverse() Style {
	s.Attributes = s.Attributes.With(AttrReverse)
	return s
}

// Strikethrough returns the style struck through.
func (s Style) Strikethrough() Style {
	s.Attributes = s.Attributes.With(AttrStrikethrough)
	return s
}

// Cell is one screen column. Text holds a whole grapheme cluster; a wide
// cluster is followed by a continuation cell with empty Text.
type Cell struct {
	Text  string
	Width int
	Style Style
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell for one grapheme cluster.
func NewCell(cluster string, style Style) Cell {
	return Cell{Text: cluster, Width: ClusterWidth(cluster), Style: style}
}

// IsContinuation reports whether the cell is the tail of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

// ContinuationCell returns the tail cell of a wide cluster.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// ClusterWidth returns the column width of a grapheme cluster, at least
// one so that control characters still occupy a cell.
func ClusterWidth(cluster string) int {
	return max(uniseg.StringWidth(cluster), 1)
}

// CellsFromString splits s into grapheme clusters, appending a
// continuation cell after each wide one.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		c := NewCell(cluster, style)
		cells = append(cells, c)
		for i := 1; i < c.Width; i++ {
			cells = append(cells, ContinuationCell(style))
		}
	}
	return cells
}

// StringFromCells joins the clusters of cells, skipping continuations.
func StringFromCells(cells []Cell) string {
	var out []byte
	for _, c := range cells {
		if !c.IsContinuation() {
			out = append(out, c.Text...)
		}
	}
	return string(out)
}

// Rect is a screen region. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// RectFromSize creates a rect from an origin and size.
func RectFromSize(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the rect's width.
func (r Rect) Width() int {
	return max(r.Right-r.Left, 0)
}

// Height returns the rect's height.
func (r Rect) Height() int {
	return max(r.Bottom-r.Top, 0)
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}
