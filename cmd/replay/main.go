package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

func main() {
	config.LoadDotEnv()
	storage := config.StorageFromEnv()
	gameCfg := config.GameFromEnv()

	file := flag.String("file", "", "record file to play (default: newest in the record directory)")
	dir := flag.String("dir", storage.RecordDir, "directory holding .jsonl records")
	list := flag.Bool("list", false, "list available records and exit")
	speed := flag.Float64("speed", 1, "playback speed multiplier")
	flag.Parse()

	if *list {
		files, err := listRecords(*dir)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	path := *file
	if path == "" {
		files, err := listRecords(*dir)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if len(files) == 0 {
			log.Fatalf("❌ No records in %s", *dir)
		}
		path = files[0]
	}

	steps, err := game.ReadRecords(path)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", path, err)
	}
	if len(steps) == 0 {
		log.Fatalf("❌ %s holds no steps", path)
	}
	if *speed <= 0 {
		*speed = 1
	}

	first := steps[0].State
	render := renderer.NewTerminalRenderer(first.Width, first.Height)
	renderer.HideCursor(os.Stdout)
	defer renderer.ShowCursor(os.Stdout)

	for i, step := range steps {
		if i > 0 {
			time.Sleep(stepDelay(steps[i-1], step, *speed, gameCfg.TickInterval))
		}
		if err := render.Render(os.Stdout, step.State); err != nil {
			log.Fatalf("❌ Render failed: %v", err)
		}
		fmt.Printf("  📼 %s  step %d/%d\n", filepath.Base(path), i+1, len(steps))
	}
}

// maxGap caps idle stretches such as a long pause
const maxGap = 2 * time.Second

// stepDelay is the recorded time between two steps scaled by speed. Records
// without usable timestamps fall back to one tick.
func stepDelay(prev, next game.StepRecord, speed float64, tick time.Duration) time.Duration {
	gap := next.Time.Sub(prev.Time)
	if prev.Time.IsZero() || next.Time.IsZero() || gap < 0 {
		gap = tick
	}
	if gap > maxGap {
		gap = maxGap
	}
	return time.Duration(float64(gap) / speed)
}

// listRecords returns the .jsonl files in dir, newest first
func listRecords(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read record dir: %w", err)
	}

	type record struct {
		path string
		mod  time.Time
	}
	var records []record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, record{filepath.Join(dir, e.Name()), info.ModTime()})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].mod.After(records[j].mod)
	})
	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = r.path
	}
	return paths, nil
}
