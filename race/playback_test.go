package race

import "testing"

func TestPlaybackStep(t *testing.T) {
	tl := defaultTimeline(t)
	p := NewPlayback(tl, 5)

	if p.Generation() != 0 || p.Done() {
		t.Fatalf("new playback at gen %d, done=%v", p.Generation(), p.Done())
	}
	if _, ok := p.Winner(); ok {
		t.Error("winner should be hidden before the race ends")
	}

	steps := 0
	for p.Step() {
		steps++
		if p.Current() != tl.Snapshot(p.Generation()) {
			t.Fatalf("Current() does not match snapshot %d", p.Generation())
		}
	}
	if steps != tl.Total() {
		t.Errorf("stepped %d times, want %d", steps, tl.Total())
	}
	if !p.Done() || p.Progress() != 1 {
		t.Errorf("expected done at progress 1, got done=%v progress=%v", p.Done(), p.Progress())
	}

	w, ok := p.Winner()
	if !ok || w.ID != tl.WinnerID() {
		t.Errorf("Winner() = %s, %v; want %s", w.ID, ok, tl.WinnerID())
	}
}

func TestPlaybackTrails(t *testing.T) {
	tl := defaultTimeline(t)
	p := NewPlayback(tl, 5)
	id := tl.Candidates()[0].Design.ID

	if got := p.Trail(id); len(got) != 1 {
		t.Fatalf("initial trail length %d, want 1", len(got))
	}

	for i := 0; i < 12; i++ {
		p.Step()
	}
	trail := p.Trail(id)
	if len(trail) != 5 {
		t.Fatalf("trail length %d, want 5", len(trail))
	}
	for i, pos := range trail {
		want, _ := tl.Snapshot(8 + i).Design(id)
		if pos != want.Position {
			t.Errorf("trail[%d] = %v, want generation %d position %v", i, pos, 8+i, want.Position)
		}
	}
}

func TestPlaybackSeekAndReset(t *testing.T) {
	tl := defaultTimeline(t)
	p := NewPlayback(tl, 0) // default trail length
	id := tl.Candidates()[1].Design.ID

	p.Seek(30)
	if p.Generation() != 30 {
		t.Fatalf("Seek(30) left cursor at %d", p.Generation())
	}
	if n := len(p.Trail(id)); n != DefaultTrailLength {
		t.Errorf("trail length after seek = %d, want %d", n, DefaultTrailLength)
	}

	p.Seek(500)
	if p.Generation() != tl.Total() {
		t.Errorf("Seek past end = %d, want %d", p.Generation(), tl.Total())
	}

	p.Reset()
	if p.Generation() != 0 || p.Done() {
		t.Errorf("Reset left cursor at %d, done=%v", p.Generation(), p.Done())
	}
	if n := len(p.Trail(id)); n != 1 {
		t.Errorf("trail length after reset = %d, want 1", n)
	}
}
