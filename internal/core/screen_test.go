package core

import "testing"

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, 'H', ColorRed)
	if c := s.GetCell(3, 2); c.Rune != 'H' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected H/red", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(0, 100, 'A', ColorDefault)
	if c := s.GetCell(100, 0); c.Rune != ' ' {
		t.Errorf("out of bounds GetCell should be blank, got %q", c.Rune)
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(3, 0, "Hello")

	if got := s.String(); got != "   Hel" {
		t.Errorf("String() = %q, expected %q", got, "   Hel")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize() dims = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "   \n   \n   " {
		t.Errorf("String() after resize = %q", got)
	}
}
