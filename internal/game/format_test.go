package game

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "00:00",
		-3 * time.Second:        "00:00",
		1500 * time.Millisecond: "00:01",
		20 * time.Second:        "00:20",
		75 * time.Second:        "01:15",
		time.Hour + 2*time.Minute + 3*time.Second: "1:02:03",
		59*time.Minute + 59*time.Second:           "59:59",
	}
	for in, want := range cases {
		if got := FormatElapsed(in); got != want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBuzzType_Pattern(t *testing.T) {
	got := BuzzCorrect.PatternMillis()
	want := []int64{100, 100, 100, 100, 100, 100}
	if len(got) != len(want) {
		t.Fatalf("pattern %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pattern %v, want %v", got, want)
		}
	}
	if p := BuzzGameOver.Pattern(); len(p) != 2 || p[1] != 2*time.Second {
		t.Errorf("game over pattern %v", p)
	}
	if p := BuzzCountdownPanic.Pattern(); len(p) != 2 || p[1] != 200*time.Millisecond {
		t.Errorf("panic pattern %v", p)
	}

	p := BuzzNone.Pattern()
	p[0] = time.Hour
	if BuzzNone.Pattern()[0] != 0 {
		t.Error("Pattern should return a copy")
	}
	if len(BuzzType(99).Pattern()) != 1 {
		t.Error("unknown buzz should fall back to the empty pattern")
	}
}

func TestBuzzType_String(t *testing.T) {
	if BuzzCountdownPanic.String() != "countdown_panic" {
		t.Errorf("String %q", BuzzCountdownPanic.String())
	}
	text, err := BuzzGameOver.MarshalText()
	if err != nil || string(text) != "game_over" {
		t.Errorf("MarshalText = %q, %v", text, err)
	}
}
