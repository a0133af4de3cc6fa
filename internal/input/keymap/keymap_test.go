package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/paper/internal/input/key"
)

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  *Keymap
		wantErr bool
	}{
		{"valid", NewKeymap("t").Add("Ctrl+M", "editor.toggleList").Add("<S-Tab>", "editor.shiftTab"), false},
		{"empty keys", NewKeymap("t").Add("", "editor.enter"), true},
		{"bad spec", NewKeymap("t").Add("Hyper+x", "editor.enter"), true},
		{"mask", NewKeymap("t").Mask("Enter"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultBindings(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		ev   key.Event
		want string
	}{
		{key.NewSpecialEvent(key.KeyEnter, key.ModNone), "editor.enter"},
		{key.NewSpecialEvent(key.KeyBackspace, key.ModNone), "editor.backspace"},
		{key.NewSpecialEvent(key.KeyTab, key.ModNone), "editor.tab"},
		{key.NewSpecialEvent(key.KeyTab, key.ModShift), "editor.shiftTab"},
		{key.NewRuneEvent('m', key.ModCtrl), "editor.toggleList"},
		{key.NewRuneEvent('L', key.ModCtrl), "editor.toggleList"},
		{key.NewSpecialEvent(key.KeyUp, key.ModNone), "editor.arrowUp"},
		{key.NewSpecialEvent(key.KeyDown, key.ModAlt), "editor.moveDown"},
		{key.NewRuneEvent('q', key.ModCtrl), "app.quit"},
	}
	for _, tt := range tests {
		b, ok := r.Lookup(tt.ev)
		if !ok || b.Action != tt.want {
			t.Errorf("%s: expected %s, got %q (bound=%v)", tt.ev.Spec(), tt.want, b.Action, ok)
		}
	}

	if _, ok := r.Lookup(key.NewRuneEvent('x', key.ModNone)); ok {
		t.Error("expected plain rune to be unbound")
	}
}

func TestRegistryPriority(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Default())
	_ = r.Register(NewKeymap("user").WithPriority(PriorityUser).
		Add("<CR>", "script.custom").
		Mask("Ctrl+L"))

	if b, _ := r.LookupSpec("Enter"); b.Action != "script.custom" {
		t.Errorf("expected user binding to win, got %q", b.Action)
	}
	if _, ok := r.LookupSpec("Ctrl+L"); ok {
		t.Error("expected masked key to be unbound")
	}
	if b, _ := r.LookupSpec("Ctrl+M"); b.Action != "editor.toggleList" {
		t.Errorf("expected unmasked default to remain, got %q", b.Action)
	}

	r.Unregister("user")
	if b, _ := r.LookupSpec("Enter"); b.Action != "editor.enter" {
		t.Errorf("expected default after unregister, got %q", b.Action)
	}
}

func TestRegistryEqualPriorityLaterWins(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("a").Add("Ctrl+K", "first"))
	_ = r.Register(NewKeymap("b").Add("Ctrl+K", "second"))

	if b, _ := r.LookupSpec("Ctrl+K"); b.Action != "second" {
		t.Errorf("expected second, got %q", b.Action)
	}

	// Re-registering "a" makes it the latest.
	_ = r.Register(NewKeymap("a").Add("Ctrl+K", "third"))
	if b, _ := r.LookupSpec("Ctrl+K"); b.Action != "third" {
		t.Errorf("expected third, got %q", b.Action)
	}
}

func TestRegistryRejects(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrNilKeymap) {
		t.Errorf("expected ErrNilKeymap, got %v", err)
	}
	if err := r.Register(NewKeymap("bad").Add("Ctrl+", "x")); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
	if _, ok := r.Get("bad"); ok {
		t.Error("expected invalid keymap not to be registered")
	}
}

func TestKeysFor(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Default())

	got := r.KeysFor("editor.toggleList")
	if len(got) != 2 || got[0] != "Ctrl+L" || got[1] != "Ctrl+M" {
		t.Errorf("expected [Ctrl+L Ctrl+M], got %v", got)
	}
}

func TestBindingArgsAreCopied(t *testing.T) {
	km := NewKeymap("t").AddBinding(NewBinding("Ctrl+1", "block.turnInto").WithArgs(map[string]any{"type": "heading"}))
	r := NewRegistry()
	_ = r.Register(km)

	km.Bindings[0].Args["type"] = "mutated"
	b, _ := r.LookupSpec("Ctrl+1")
	if b.Args["type"] != "heading" {
		t.Errorf("expected registered args isolated, got %v", b.Args["type"])
	}
}
