package idle

import (
	"testing"
	"time"
)

type fakeTimer struct {
	running bool
	pauses  int
	resumes int
	guard   *Guard
}

func (f *fakeTimer) actions() Actions {
	return Actions{
		Pause: func() {
			f.pauses++
			f.running = false
			f.guard.SetTimerRunning(false, time.Time{})
		},
		Resume: func() {
			f.resumes++
			f.running = true
			f.guard.SetTimerRunning(true, time.Now())
		},
	}
}

func setupGuard(threshold time.Duration) (*Guard, *fakeTimer) {
	ft := &fakeTimer{}
	g := NewGuard(threshold, ft.actions())
	ft.guard = g
	return g, ft
}

func TestIdleAfterThresholdPausesOnce(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)

	ft.running = true
	g.SetTimerRunning(true, start)

	// One tick per second with no activity.
	now := start
	for i := 0; i < 130; i++ {
		now = now.Add(time.Second)
		g.Tick(now)
	}

	if !g.Idle() {
		t.Fatal("expected idle after threshold elapsed")
	}
	if ft.pauses != 1 {
		t.Fatalf("expected exactly one pause, got %d", ft.pauses)
	}
	// Catching the timer-running-changed echo of its own pause must not
	// clear the idle state.
	if g.IdleSeconds() != 130-120 {
		t.Fatalf("expected %d idle seconds, got %d", 10, g.IdleSeconds())
	}
}

func TestActivityWhileIdleResumesOnce(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)
	ft.running = true
	g.SetTimerRunning(true, start)

	now := start.Add(121 * time.Second)
	g.Tick(now)
	if !g.Idle() {
		t.Fatal("expected idle")
	}

	g.Activity(now.Add(30 * time.Second))
	if g.Idle() {
		t.Fatal("expected active after activity signal")
	}
	if ft.resumes != 1 {
		t.Fatalf("expected exactly one resume, got %d", ft.resumes)
	}
	if g.IdleSeconds() != 0 {
		t.Fatalf("expected idle counter reset, got %d", g.IdleSeconds())
	}

	// A second activity signal must not resume again.
	g.Activity(now.Add(31 * time.Second))
	if ft.resumes != 1 {
		t.Fatalf("expected still one resume, got %d", ft.resumes)
	}
}

func TestActivityPushesDeadlineOut(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)
	ft.running = true
	g.SetTimerRunning(true, start)

	now := start
	for i := 0; i < 300; i++ {
		now = now.Add(time.Second)
		if i%60 == 0 {
			g.Activity(now)
		}
		g.Tick(now)
	}

	if g.Idle() || ft.pauses != 0 {
		t.Fatalf("regular activity must prevent idle, got idle=%v pauses=%d", g.Idle(), ft.pauses)
	}
}

func TestNoDeadlineWhileTimerStopped(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)
	g.SetTimerRunning(false, start)

	now := start
	for i := 0; i < 300; i++ {
		now = now.Add(time.Second)
		g.Tick(now)
	}
	if g.Idle() || ft.pauses != 0 {
		t.Fatalf("stopped timer must never trip the guard, got idle=%v pauses=%d", g.Idle(), ft.pauses)
	}
}

func TestUserPauseCancelsPendingDeadline(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)
	ft.running = true
	g.SetTimerRunning(true, start)

	// User pauses before the threshold elapses.
	g.SetTimerRunning(false, start.Add(60*time.Second))

	now := start
	for i := 0; i < 300; i++ {
		now = now.Add(time.Second)
		g.Tick(now)
	}
	if g.Idle() || ft.pauses != 0 {
		t.Fatalf("cancelled deadline must not fire, got idle=%v pauses=%d", g.Idle(), ft.pauses)
	}
}

func TestManualRestartWhileIdleClearsIdleWithoutResume(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g, ft := setupGuard(2 * time.Minute)
	ft.running = true
	g.SetTimerRunning(true, start)

	g.Tick(start.Add(121 * time.Second))
	if !g.Idle() {
		t.Fatal("expected idle")
	}

	g.SetTimerRunning(true, start.Add(150*time.Second))
	if g.Idle() {
		t.Fatal("expected idle cleared by external restart")
	}
	if ft.resumes != 0 {
		t.Fatalf("external restart must not invoke resume, got %d", ft.resumes)
	}
}

func TestNewGuardDefaultThreshold(t *testing.T) {
	g := NewGuard(0, Actions{})
	if g.threshold != DefaultThreshold {
		t.Fatalf("expected default threshold, got %v", g.threshold)
	}
}
