package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	c := s.GetCell(5, 5)
	if c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('X')
	s.SetColor(3, 3, '#', ColorCyan)

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorYellow)

	if got := s.Row(1); !strings.HasPrefix(got, "  Hello") {
		t.Errorf("Row(1) = %q, expected to start with %q", got, "  Hello")
	}
	if c := s.GetCell(2, 1); c.Color != ColorYellow {
		t.Errorf("text color = %v, expected yellow", c.Color)
	}

	// Clipped at right edge
	s.DrawText(17, 2, "World")
	if got := s.Row(2)[17:]; got != "Wor" {
		t.Errorf("clipped text = %q, expected %q", got, "Wor")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Test", ColorDefault)

	// (20 - 4) / 2 = 8
	if got := s.Row(1)[8:12]; got != "Test" {
		t.Errorf("centered text = %q, expected %q", got, "Test")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorWhite)

	corners := map[[2]int]rune{
		{0, 0}: '┌',
		{4, 0}: '┐',
		{0, 2}: '└',
		{4, 2}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if got := s.Get(2, 0); got != '─' {
		t.Errorf("top edge = %q, expected '─'", got)
	}
	if got := s.Get(0, 1); got != '│' {
		t.Errorf("left edge = %q, expected '│'", got)
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawHLine(1, 1, 4, '=', ColorBlue)
	s.DrawVLine(8, 2, 3, '|', ColorBlue)

	if got := s.Row(1)[1:5]; got != "====" {
		t.Errorf("hline = %q, expected %q", got, "====")
	}
	for y := 2; y < 5; y++ {
		if s.Get(8, y) != '|' {
			t.Errorf("vline missing at y=%d", y)
		}
	}
	if s.Get(8, 5) != ' ' {
		t.Error("vline drawn past its length")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawRect(NewRect(1, 1, 2, 2), '#', ColorGreen)

	count := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if s.Get(x, y) == '#' {
				count++
			}
		}
	}
	if count != 4 {
		t.Errorf("DrawRect filled %d cells, expected 4", count)
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q, expected %q", got, "abc\ndef")
	}

	s.Resize(4, 4)
	if s.Width() != 4 || s.Height() != 4 {
		t.Errorf("after Resize: %dx%d, expected 4x4", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should discard content")
	}
	if s.Row(99) != "    " {
		t.Error("out of range Row should be blank")
	}
}
