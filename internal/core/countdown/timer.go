package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// Timer is a tick driven countdown. It owns no goroutine: the caller delivers one Tick per second.
type Timer struct {
	state     State
	total     int
	remaining int
}

func New() *Timer {
	return &Timer{}
}

// Start arms the timer for minutes and puts it in the running state.
// It is a no-op while a countdown is running or paused.
func (t *Timer) Start(minutes int) error {
	return t.StartSeconds(minutes * 60)
}

// StartSeconds arms the timer for secs seconds.
func (t *Timer) StartSeconds(secs int) error {
	if t.state == Running || t.state == Paused {
		return nil
	}
	if secs <= 0 {
		return domain.ErrInvalidMinutes
	}
	t.total = secs
	t.remaining = t.total
	t.state = Running
	return nil
}

// StartText parses the form field and starts the countdown. Fractional minutes are accepted
// and truncated to whole seconds, so 1.5 arms 90 seconds.
func (t *Timer) StartText(text string) error {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return domain.ErrInvalidMinutes
	}
	return t.StartSeconds(int(minutes * 60))
}

func (t *Timer) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

func (t *Timer) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Toggle flips between running and paused.
func (t *Timer) Toggle() {
	switch t.state {
	case Running:
		t.Pause()
	case Paused:
		t.Resume()
	}
}

func (t *Timer) Reset() {
	t.state = Idle
	t.total = 0
	t.remaining = 0
}

// Tick advances one second and reports whether this tick finished the countdown.
func (t *Timer) Tick() bool {
	if t.state != Running {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.state = Finished
		return true
	}
	return false
}

func (t *Timer) State() State {
	return t.state
}

// Active is true while a countdown is in progress, paused or not.
func (t *Timer) Active() bool {
	return t.state == Running || t.state == Paused
}

func (t *Timer) Total() int {
	return t.total
}

func (t *Timer) Remaining() int {
	return t.remaining
}

func (t *Timer) Elapsed() int {
	return t.total - t.remaining
}

// Progress is the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.Elapsed()) / float64(t.total)
}

// LoggedMinutes is the duration recorded for a finished countdown, never less than a minute.
func (t *Timer) LoggedMinutes() int {
	return max(1, t.total/60)
}

// Format renders the remaining time as MM:SS.
func (t *Timer) Format() string {
	return FormatSeconds(t.remaining)
}

func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
