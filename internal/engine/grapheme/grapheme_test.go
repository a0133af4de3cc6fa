package grapheme

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"é", 1},
		{"👍🏽x", 2},
	}

	for _, tt := range tests {
		if got := Count(tt.text); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSplitAt(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		lo, hi           int
		head, mid, tail  string
	}{
		{"collapsed middle", "hello", 2, 2, "he", "", "llo"},
		{"collapsed end", "hello", 5, 5, "hello", "", ""},
		{"collapsed start", "hello", 0, 0, "", "", "hello"},
		{"range", "abcdef", 2, 4, "ab", "cd", "ef"},
		{"reversed range", "abcdef", 4, 2, "ab", "cd", "ef"},
		{"past end", "abc", 1, 99, "a", "bc", ""},
		{"negative", "abc", -4, 1, "", "a", "bc"},
		{"combining", "éx", 1, 1, "é", "", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, mid, tail := SplitAt(tt.text, tt.lo, tt.hi)
			if head != tt.head || mid != tt.mid || tail != tt.tail {
				t.Errorf("SplitAt(%q, %d, %d) = (%q, %q, %q), want (%q, %q, %q)",
					tt.text, tt.lo, tt.hi, head, mid, tail, tt.head, tt.mid, tt.tail)
			}
		})
	}
}

func TestInsertAndDeleteBefore(t *testing.T) {
	text := Insert("hllo", 1, "e")
	if text != "hello" {
		t.Fatalf("expected hello, got %q", text)
	}

	text, caret := DeleteBefore(text, 5)
	if text != "hell" || caret != 4 {
		t.Errorf("expected (hell, 4), got (%q, %d)", text, caret)
	}

	text, caret = DeleteBefore(text, 0)
	if text != "hell" || caret != 0 {
		t.Errorf("expected no change at offset 0, got (%q, %d)", text, caret)
	}
}

func TestSlice(t *testing.T) {
	if got := Slice("abcdef", 1, 3); got != "bc" {
		t.Errorf("expected bc, got %q", got)
	}
	if got := Slice("abcdef", 3, 1); got != "" {
		t.Errorf("expected empty slice, got %q", got)
	}
}
