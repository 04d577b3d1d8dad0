package game

import (
	"testing"
)

func TestRecorderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	id := NewSessionID()

	rec, err := NewRecorder(dir, id)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	g, sched := newTestGame(t, classicSettings(t), nil)
	placeFood(g, Point{X: 0, Y: 0})
	rec.Attach(g)

	g.Start()
	sched.FireN(3)
	g.Pause()

	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// closing twice is harmless and later steps are ignored
	rec.RecordStep(StepRecord{})
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	steps, err := ReadRecords(rec.Path())
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	// start, three ticks, pause
	if len(steps) != 5 {
		t.Fatalf("Expected 5 steps, got %d", len(steps))
	}
	if steps[0].SessionID != id {
		t.Errorf("Expected session %s, got %s", id, steps[0].SessionID)
	}
	if steps[3].State.Tick != 3 || steps[3].State.LastResult != Moved {
		t.Errorf("Unexpected third tick: %+v", steps[3].State)
	}
	if steps[4].State.State != Paused {
		t.Errorf("Expected last step paused, got %v", steps[4].State.State)
	}
	if head := steps[3].State.Snake[0]; head != (Point{X: 8, Y: 10}) {
		t.Errorf("Expected head (8,10), got %v", head)
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	if _, err := ReadRecords("does/not/exist.jsonl"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
