package viewport

import "testing"

func TestScrollClamps(t *testing.T) {
	v := New(5)
	v.SetRows(12)

	tests := []struct {
		delta int
		top   int
		moved bool
	}{
		{3, 3, true},
		{10, 7, true},
		{1, 7, false},
		{-100, 0, true},
	}
	for _, tt := range tests {
		moved := v.ScrollBy(tt.delta)
		if v.Top() != tt.top || moved != tt.moved {
			t.Errorf("ScrollBy(%d): expected top %d moved %v, got %d %v", tt.delta, tt.top, tt.moved, v.Top(), moved)
		}
	}
}

func TestShortContentDoesNotScroll(t *testing.T) {
	v := New(10)
	v.SetRows(4)
	v.ScrollBy(3)
	if v.Top() != 0 {
		t.Errorf("expected top 0, got %d", v.Top())
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		top        int
		margin     int
		start, end int
		want       int
	}{
		{"already visible", 2, 0, 3, 4, 2},
		{"above", 10, 0, 4, 5, 4},
		{"below", 0, 0, 12, 13, 8},
		{"above with margin", 10, 1, 4, 5, 3},
		{"below with margin", 0, 1, 12, 13, 9},
		{"taller than view", 0, 0, 6, 15, 6},
		{"clamped at end", 0, 2, 19, 20, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(5)
			v.SetRows(20)
			v.SetMargin(tt.margin)
			v.ScrollTo(tt.top)

			v.EnsureVisible(tt.start, tt.end)
			if v.Top() != tt.want {
				t.Errorf("expected top %d, got %d", tt.want, v.Top())
			}
		})
	}
}

func TestScreenConversion(t *testing.T) {
	v := New(3)
	v.SetRows(10)
	v.ScrollTo(4)

	if y, ok := v.ToScreen(5); !ok || y != 1 {
		t.Errorf("expected row 5 at screen 1, got %d %v", y, ok)
	}
	if _, ok := v.ToScreen(7); ok {
		t.Error("expected row 7 off screen")
	}
	if got := v.FromScreen(2); got != 6 {
		t.Errorf("expected screen 2 to be row 6, got %d", got)
	}
}
