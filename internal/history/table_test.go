package history

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{left("Set"), right("Weight"), right("Reps")}
	rows := [][]string{
		{"1", "100", "5"},
		{"Drop 2", "7.5", "12"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Set     Weight  Reps" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1          100     5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Drop 2     7.5    12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]column{left("Name"), left("N")}, [][]string{{"腿日", "1"}, {"Legs", "2"}})
	if lines[1] != "腿日  1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "Legs  2" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestClipTruncatesToWidth(t *testing.T) {
	got := clip([]string{"abcdefgh", "ab"}, 5)
	if got[0] != "ab..." || got[1] != "ab" {
		t.Fatalf("unexpected clip result: %q", got)
	}
}
