package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/focusd/internal/goal"
	"github.com/sandeepkv93/focusd/internal/idle"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/score"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/timer"
)

type View string

const (
	ViewFocus    View = "Focus"
	ViewGoal     View = "Goal"
	ViewScore    View = "Score"
	ViewSessions View = "Sessions"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Focus    string
	Goal     string
	Score    string
	Sessions string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// clock is the single wall-clock source shared by the model and the engine
// hooks, swappable in tests.
type clock struct {
	fn func() time.Time
}

func (c *clock) Now() time.Time { return c.fn() }

func (m Model) now() time.Time { return m.clk.Now() }

// eventBuffer collects notifications raised inside engine hooks so the update
// loop can surface them after the triggering call returns.
type eventBuffer struct {
	notes []Notification
}

func (b *eventBuffer) push(title, body, level string, at time.Time) {
	b.notes = append(b.notes, Notification{Title: title, Body: body, Level: level, At: at})
}

func (b *eventBuffer) drain() []Notification {
	out := b.notes
	b.notes = nil
	return out
}

type Model struct {
	CurrentView    View
	Status         StatusBar
	Keys           GlobalKeyMap
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Quitting       bool
	LastError      error

	Scheduler *scheduler.Engine

	records *storage.Records
	timer   *timer.Timer
	guard   *idle.Guard
	tracker *goal.Tracker
	scorer  *score.Engine
	events  *eventBuffer
	ctx     context.Context
	clk     *clock

	// Cached reads, refreshed when engine events or palette commands land.
	Goal         model.DailyGoalRecord
	Score        score.Result
	Sessions     []model.SessionRecord
	Tasks        []model.Task
	Distractions []model.Distraction
	SessionTag   string

	ticking bool

	// Bubble components used for rich TUI controls
	focusProgress   progress.Model
	goalProgress    progress.Model
	expProgress     progress.Model
	sessionsTable   table.Model
	commandInput    textinput.Model
	helpModel       help.Model
	summaryViewport viewport.Model
	runSpinner      spinner.Model
	spinnerActive   bool
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TimerTickMsg struct{}

type RolloverEventMsg struct {
	Event scheduler.Event
}

func NewModel(records *storage.Records) (Model, error) {
	return NewModelWithConfig(records, nil, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(records *storage.Records, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) (Model, error) {
	ctx := context.Background()
	events := &eventBuffer{}
	clk := &clock{fn: time.Now}
	nowFn := clk.Now

	records.SetDiscardHook(func(key string, err error) {
		events.push("Storage", fmt.Sprintf("discarded corrupt record %s: %v", key, err), "error", nowFn())
	})

	sessionCfg := cfg.SessionConfig()
	if persisted, found, err := records.TimerSettings(ctx); err != nil {
		return Model{}, fmt.Errorf("load timer settings: %w", err)
	} else if found {
		sessionCfg = persisted
	}

	var (
		tmr *timer.Timer
		grd *idle.Guard
		trk *goal.Tracker
	)

	tmr, err := timer.New(sessionCfg, timer.Hooks{
		OnWorkComplete: func(rec model.SessionRecord) {
			if err := records.AppendSession(ctx, rec); err != nil {
				events.push("Storage", fmt.Sprintf("save session: %v", err), "error", nowFn())
			}
			if _, err := trk.Increment(ctx); err != nil {
				events.push("Goal", fmt.Sprintf("count session: %v", err), "error", nowFn())
			}
			events.push("Focus", "work session complete, take a break", "info", nowFn())
		},
		OnBreakComplete: func(rec model.SessionRecord) {
			if err := records.AppendSession(ctx, rec); err != nil {
				events.push("Storage", fmt.Sprintf("save session: %v", err), "error", nowFn())
			}
			events.push("Focus", "break over, ready for the next session", "info", nowFn())
		},
		OnInterrupt: func() {
			events.push("Focus", "work session interrupted", "info", nowFn())
		},
		OnRunningChange: func(running bool) {
			if grd != nil {
				grd.SetTimerRunning(running, nowFn())
			}
		},
	})
	if err != nil {
		return Model{}, fmt.Errorf("build timer: %w", err)
	}
	tmr.SetClock(nowFn)

	grd = idle.NewGuard(time.Duration(cfg.IdleThresholdSeconds)*time.Second, idle.Actions{
		Pause: func() {
			tmr.Pause()
			events.push("Idle", "no activity detected, timer paused", "info", nowFn())
		},
		Resume: func() {
			tmr.Start()
			events.push("Idle", "welcome back, timer resumed", "info", nowFn())
		},
	})

	trk = goal.NewTracker(records, goal.Hooks{
		OnGoalMet: func(rec model.DailyGoalRecord) {
			events.push("Goal", fmt.Sprintf("daily goal met: %d focus sessions", rec.Goal), "info", nowFn())
		},
	})
	trk.SetClock(nowFn)
	if _, err := trk.LoadForToday(ctx); err != nil {
		return Model{}, fmt.Errorf("load daily goal: %w", err)
	}

	scorer := score.NewEngine(records, score.Hooks{
		OnLevelUp: func(newLevel int) {
			events.push("Level Up", fmt.Sprintf("reached level %d: %s", newLevel, model.LevelTitle(newLevel)), "info", nowFn())
		},
	})
	scorer.SetClock(nowFn)

	m := Model{
		CurrentView: ViewFocus,
		Keys: GlobalKeyMap{
			Focus:    "1",
			Goal:     "2",
			Score:    "3",
			Sessions: "4",
			Help:     "?",
			Quit:     "q",
		},
		Scheduler:      engine,
		records:        records,
		timer:          tmr,
		guard:          grd,
		tracker:        trk,
		scorer:         scorer,
		events:         events,
		ctx:            ctx,
		clk:            clk,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.initBubbleComponents()

	if res, err := scorer.Recompute(ctx); err != nil {
		return Model{}, fmt.Errorf("initial score: %w", err)
	} else {
		m.Score = res
	}
	if err := m.refreshDerived(); err != nil {
		return Model{}, fmt.Errorf("load records: %w", err)
	}
	m.drainEvents()
	m.Status = StatusBar{}
	return m, nil
}

func (m *Model) initBubbleComponents() {
	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.goalProgress = progress.New(progress.WithDefaultGradient())
	m.expProgress = progress.New(progress.WithDefaultGradient())

	cols := []table.Column{
		{Title: "Time", Width: 10},
		{Title: "Kind", Width: 6},
		{Title: "Min", Width: 4},
		{Title: "Task", Width: 20},
		{Title: "Tag", Width: 10},
	}
	m.sessionsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.summaryViewport = viewport.New(54, 12)
}

// refreshDerived reloads the persisted collections that back the panels. The
// goal record comes from the tracker cache; sessions, tasks and distractions
// come from storage.
func (m *Model) refreshDerived() error {
	m.Goal = m.tracker.Current()

	sessions, err := m.records.Sessions(m.ctx)
	if err != nil {
		return err
	}
	m.Sessions = sessions

	tasks, err := m.records.Tasks(m.ctx)
	if err != nil {
		return err
	}
	m.Tasks = tasks

	distractions, err := m.records.Distractions(m.ctx)
	if err != nil {
		return err
	}
	m.Distractions = distractions

	m.timer.SetLabels(m.currentTaskText(), m.SessionTag)
	m.syncBubbleData()
	return nil
}

// currentTaskText is the oldest open task, shown on the focus panel and
// stamped onto session records.
func (m Model) currentTaskText() string {
	for _, t := range m.Tasks {
		if !t.Completed {
			return t.Text
		}
	}
	return ""
}

func (m *Model) recomputeScore() {
	res, err := m.scorer.Recompute(m.ctx)
	if err != nil {
		m.events.push("Score", fmt.Sprintf("recompute: %v", err), "error", m.now())
		return
	}
	m.Score = res
}

// drainEvents moves hook notifications into the displayed list and reports
// whether any arrived.
func (m *Model) drainEvents() bool {
	notes := m.events.drain()
	for _, n := range notes {
		m.notify(n)
		m.Status = StatusBar{Text: n.Body, IsError: n.Level == "error"}
	}
	return len(notes) > 0
}

func (m *Model) notify(n Notification) {
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
