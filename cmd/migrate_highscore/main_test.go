package main

import (
	"errors"
	"testing"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestParseLegacyScore(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`{"snakeHighScore": "120"}`, 120, false},
		{`{"snakeHighScore": 80, "other": "x"}`, 80, false},
		{`{"snakeHighScore": "abc"}`, 0, true},
		{`{"snakeHighScore": true}`, 0, true},
		{`not json`, 0, true},
	}
	for _, tt := range tests {
		got, err := parseLegacyScore([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLegacyScore(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLegacyScore(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if _, err := parseLegacyScore([]byte(`{}`)); !errors.Is(err, errNoScore) {
		t.Errorf("Expected errNoScore, got %v", err)
	}
}

func TestMigrateOnlyRaises(t *testing.T) {
	store := game.NewMemoryStore(100)

	updated, err := migrate(store, 60)
	if err != nil || updated {
		t.Errorf("Expected no update for a lower score, got %v, %v", updated, err)
	}
	updated, err = migrate(store, 150)
	if err != nil || !updated {
		t.Fatalf("Expected update, got %v, %v", updated, err)
	}
	if hs, _ := store.HighScore(); hs != 150 {
		t.Errorf("Expected 150, got %d", hs)
	}
}
