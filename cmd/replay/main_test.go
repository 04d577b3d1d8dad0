package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestListRecordsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "game_a_1.jsonl")
	newer := filepath.Join(dir, "game_b_2.jsonl")
	for _, p := range []string{old, newer, filepath.Join(dir, "notes.txt")} {
		if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	files, err := listRecords(dir)
	if err != nil {
		t.Fatalf("listRecords failed: %v", err)
	}
	if len(files) != 2 || files[0] != newer || files[1] != old {
		t.Errorf("Unexpected order: %v", files)
	}
}

func TestListRecordsMissingDir(t *testing.T) {
	if _, err := listRecords(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestStepDelay(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) game.StepRecord { return game.StepRecord{Time: base.Add(d)} }
	tick := 200 * time.Millisecond

	tests := []struct {
		name       string
		prev, next game.StepRecord
		speed      float64
		want       time.Duration
	}{
		{"tick gap", at(0), at(200 * time.Millisecond), 1, 200 * time.Millisecond},
		{"pause then resume", at(0), at(50 * time.Millisecond), 1, 50 * time.Millisecond},
		{"double speed", at(0), at(200 * time.Millisecond), 2, 100 * time.Millisecond},
		{"long pause capped", at(0), at(time.Minute), 1, maxGap},
		{"out of order", at(time.Second), at(0), 1, tick},
		{"no timestamps", game.StepRecord{}, game.StepRecord{}, 1, tick},
	}
	for _, tt := range tests {
		if got := stepDelay(tt.prev, tt.next, tt.speed, tick); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
