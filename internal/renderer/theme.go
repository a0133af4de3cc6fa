package renderer

import (
	"errors"
	"fmt"

	"github.com/dshills/paper/internal/config"
	"github.com/dshills/paper/internal/renderer/core"
	"github.com/dshills/paper/internal/renderer/statusline"
)

// Theme holds the styles the renderer draws with.
type Theme struct {
	Text      core.Style
	Muted     core.Style
	Marker    core.Style
	Heading   core.Style
	Quote     core.Style
	Code      core.Style
	Handle    core.Style
	Selection core.Style
	Drop      core.Style
	Refused   core.Style
	Status    statusline.Styles
}

// refusedTint is blended into the indicator colour for drops that would
// land inside the dragged group.
var refusedTint = core.ColorFromRGB(0xbf, 0x61, 0x6a)

// ThemeFromConfig builds a theme from hex colours. Empty entries use the
// terminal default colour.
func ThemeFromConfig(tc config.ThemeConfig) (Theme, error) {
	var errs []error
	parse := func(name, hex string) core.Color {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", name, err))
		}
		return c
	}

	text := parse("text", tc.Text)
	muted := parse("muted", tc.Muted)
	accent := parse("accent", tc.Accent)
	handle := parse("handle", tc.Handle)
	indicator := parse("indicator", tc.Indicator)
	statusText := parse("status_text", tc.StatusText)
	statusBack := parse("status_back", tc.StatusBack)
	if err := errors.Join(errs...); err != nil {
		return Theme{}, err
	}

	bar := core.NewStyle(statusText).WithBackground(statusBack)
	return Theme{
		Text:      core.NewStyle(text),
		Muted:     core.NewStyle(muted),
		Marker:    core.NewStyle(accent),
		Heading:   core.NewStyle(accent.Lighten(0.1)).Bold(),
		Quote:     core.NewStyle(text.Blend(muted, 0.5)).Italic(),
		Code:      core.NewStyle(accent.Blend(text, 0.4)),
		Handle:    core.NewStyle(handle),
		Selection: core.NewStyle(text).Reverse(),
		Drop:      core.NewStyle(indicator).Bold(),
		Refused:   core.NewStyle(indicator.Blend(refusedTint, 0.7)),
		Status: statusline.Styles{
			Bar:   bar,
			Label: core.NewStyle(statusBack).WithBackground(accent).Bold(),
			Error: bar.WithForeground(refusedTint).Bold(),
		},
	}, nil
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	th, err := ThemeFromConfig(config.Default().Theme)
	if err != nil {
		panic(err)
	}
	return th
}
