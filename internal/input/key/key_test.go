package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Event{Key: KeyRune, Rune: 'a'}},
		{"A", Event{Key: KeyRune, Rune: 'A'}},
		{"+", Event{Key: KeyRune, Rune: '+'}},
		{"Enter", Event{Key: KeyEnter}},
		{"esc", Event{Key: KeyEscape}},
		{"Space", Event{Key: KeyRune, Rune: ' '}},
		{"Ctrl+M", Event{Key: KeyRune, Rune: 'm', Modifiers: ModCtrl}},
		{"ctrl+m", Event{Key: KeyRune, Rune: 'm', Modifiers: ModCtrl}},
		{"Shift+Tab", Event{Key: KeyTab, Modifiers: ModShift}},
		{"Ctrl+Alt+Up", Event{Key: KeyUp, Modifiers: ModCtrl | ModAlt}},
		{"Shift+a", Event{Key: KeyRune, Rune: 'a'}},
		{"Ctrl+Plus", Event{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
		{"F5", Event{Key: KeyF5}},
		{"<C-m>", Event{Key: KeyRune, Rune: 'm', Modifiers: ModCtrl}},
		{"<S-Tab>", Event{Key: KeyTab, Modifiers: ModShift}},
		{"<CR>", Event{Key: KeyEnter}},
		{"<BS>", Event{Key: KeyBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, expected %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	for _, spec := range []string{"Hyper+a", "Ctrl+", "Ctrl+Nope", "<X-a>"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q): expected ErrInvalidSpec, got %v", spec, err)
		}
	}
}

func TestSpecRoundTrip(t *testing.T) {
	tests := map[string]string{
		"a":            "a",
		"ctrl+m":       "Ctrl+M",
		"<C-m>":        "Ctrl+M",
		"shift+tab":    "Shift+Tab",
		"alt+ctrl+up":  "Ctrl+Alt+Up",
		"space":        "Space",
		"cmd+s":        "Meta+S",
		"<CR>":         "Enter",
		"Ctrl+Shift+k": "Ctrl+K",
	}
	for in, want := range tests {
		got, err := NormalizeSpec(in)
		if err != nil {
			t.Fatalf("NormalizeSpec(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("NormalizeSpec(%q) = %q, expected %q", in, got, want)
		}
		again, err := NormalizeSpec(got)
		if err != nil || again != got {
			t.Errorf("NormalizeSpec(%q) is not stable: %q, %v", got, again, err)
		}
	}
}

func TestIsText(t *testing.T) {
	if !NewRuneEvent('x', ModNone).IsText() {
		t.Error("expected plain rune to be text")
	}
	if !NewRuneEvent('X', ModShift).IsText() {
		t.Error("expected shifted rune to be text")
	}
	if NewRuneEvent('x', ModCtrl).IsText() {
		t.Error("expected ctrl rune not to be text")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsText() {
		t.Error("expected Enter not to be text")
	}
}

func TestMatches(t *testing.T) {
	ev := NewRuneEvent('M', ModCtrl)
	if !ev.Matches("Ctrl+M") || !ev.Matches("<C-m>") {
		t.Error("expected Ctrl+M to match both notations")
	}
	if ev.Matches("Ctrl+L") || ev.Matches("not a key") {
		t.Error("expected non-matching specs to fail")
	}
}

func TestModifierString(t *testing.T) {
	m := ModMeta | ModShift | ModCtrl | ModAlt
	if got := m.String(); got != "Ctrl+Alt+Shift+Meta" {
		t.Errorf("expected canonical order, got %q", got)
	}
	if ModNone.String() != "" {
		t.Errorf("expected empty string for no modifiers, got %q", ModNone.String())
	}
	if m.Without(ModShift).Has(ModShift) {
		t.Error("expected Shift removed")
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q"},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), "Q"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "Shift+Tab"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), "Ctrl+L"},
		{"alt arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), "Alt+Up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTcell(tt.ev).Spec(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
