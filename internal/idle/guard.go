package idle

import "time"

// DefaultThreshold is how long the user may be inactive while the timer runs
// before the guard force-pauses it.
const DefaultThreshold = 2 * time.Minute

// Actions are the external pause/resume hooks the guard drives. Nil actions
// are skipped.
type Actions struct {
	Pause  func()
	Resume func()
}

// Guard watches user-activity signals against the timer's running flag and
// force-pauses the timer once the inactivity threshold elapses. While idle it
// counts idle seconds for display; the next activity signal resumes the timer
// and clears the counter. Idle and Active are mutually exclusive states.
type Guard struct {
	threshold    time.Duration
	actions      Actions
	deadline     time.Time
	idle         bool
	idleSeconds  int
	timerRunning bool
}

func NewGuard(threshold time.Duration, actions Actions) *Guard {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Guard{threshold: threshold, actions: actions}
}

func (g *Guard) Idle() bool { return g.idle }

// IdleSeconds is the display-only count of seconds spent in the current idle
// stretch.
func (g *Guard) IdleSeconds() int { return g.idleSeconds }

// SetTimerRunning feeds the timer's running flag into the guard. A deadline
// is armed only while the timer runs; a stop that the guard itself did not
// cause cancels the pending deadline so explicit pauses never trip the guard.
func (g *Guard) SetTimerRunning(running bool, now time.Time) {
	g.timerRunning = running
	if g.idle {
		if running {
			// The timer came back by some path other than the guard's own
			// resume; the idle stretch is over.
			g.idle = false
			g.idleSeconds = 0
			g.deadline = now.Add(g.threshold)
		}
		return
	}
	if running {
		g.deadline = now.Add(g.threshold)
	} else {
		g.deadline = time.Time{}
	}
}

// Activity records a user-activity signal. While active it pushes the
// inactivity deadline out; while idle it resumes the timer exactly once.
func (g *Guard) Activity(now time.Time) {
	if g.idle {
		g.idle = false
		g.idleSeconds = 0
		g.deadline = time.Time{}
		if g.actions.Resume != nil {
			g.actions.Resume()
		}
		return
	}
	if g.timerRunning {
		g.deadline = now.Add(g.threshold)
	}
}

// Tick drives the guard's one-second clock. It advances the idle counter
// while idle, and otherwise checks whether the armed deadline has elapsed.
func (g *Guard) Tick(now time.Time) {
	if g.idle {
		g.idleSeconds++
		return
	}
	if !g.timerRunning || g.deadline.IsZero() || now.Before(g.deadline) {
		return
	}
	g.idle = true
	g.idleSeconds = 0
	g.deadline = time.Time{}
	if g.actions.Pause != nil {
		g.actions.Pause()
	}
}
