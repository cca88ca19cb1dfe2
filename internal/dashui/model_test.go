package dashui

import (
	"testing"
	"time"
)

func TestParseBound(t *testing.T) {
	got, err := parseBound(" 2024-03-01 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if got == nil || !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got, err := parseBound("  "); err != nil || got != nil {
		t.Fatalf("blank input means no bound, got %v err %v", got, err)
	}
	if _, err := parseBound("01-03-2024"); err == nil {
		t.Fatalf("wrong layout must be an error")
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" Dubai , Abu Dhabi ,, ")
	if len(got) != 2 || got[0] != "Dubai" || got[1] != "Abu Dhabi" {
		t.Fatalf("unexpected list: %v", got)
	}
	if got := parseList(""); len(got) != 0 {
		t.Fatalf("blank input means empty list, got %v", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("short lines pass through, got %q", got)
	}
	if got := truncateLine("a very long line here", 10); got != "a very ..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abcdef", 3); got != "abc" {
		t.Fatalf("tiny widths cut hard: %q", got)
	}
}

func TestPadLine(t *testing.T) {
	if got := padLine("ab", 5); got != "ab   " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := padLine("abcdef", 3); got != "abcdef" {
		t.Fatalf("wide lines pass through: %q", got)
	}
}
