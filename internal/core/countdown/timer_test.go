package countdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/countdown"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

func TestTimer_RunsToCompletion(t *testing.T) {
	tm := countdown.New()
	require.NoError(t, tm.Start(1))
	assert.Equal(t, countdown.Running, tm.State())
	assert.Equal(t, "01:00", tm.Format())

	finished := 0
	for i := 0; i < 60; i++ {
		if tm.Tick() {
			finished++
		}
	}

	assert.Equal(t, 1, finished)
	assert.Equal(t, countdown.Finished, tm.State())
	assert.Equal(t, 0, tm.Remaining())
	assert.Equal(t, 60, tm.Elapsed())
	assert.InDelta(t, 1.0, tm.Progress(), 1e-9)
	assert.Equal(t, 1, tm.LoggedMinutes())

	assert.False(t, tm.Tick(), "a finished timer does not tick")
}

func TestTimer_PauseKeepsRemaining(t *testing.T) {
	tm := countdown.New()
	require.NoError(t, tm.Start(1))

	for i := 0; i < 30; i++ {
		tm.Tick()
	}
	tm.Pause()
	assert.Equal(t, countdown.Paused, tm.State())

	for i := 0; i < 10; i++ {
		assert.False(t, tm.Tick())
	}
	assert.Equal(t, 30, tm.Remaining())
	assert.Equal(t, "00:30", tm.Format())
	assert.InDelta(t, 0.5, tm.Progress(), 1e-9)

	tm.Toggle()
	assert.Equal(t, countdown.Running, tm.State())
	tm.Tick()
	assert.Equal(t, 29, tm.Remaining())
}

func TestTimer_InvalidMinutes(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"not a number", "abc"},
		{"empty", ""},
		{"not finite", "Inf"},
		{"nan", "NaN"},
		{"under a second", "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := countdown.New()
			err := tm.StartText(tt.text)
			assert.ErrorIs(t, err, domain.ErrInvalidMinutes)
			assert.Equal(t, countdown.Idle, tm.State())
		})
	}
}

func TestTimer_FractionalMinutes(t *testing.T) {
	tm := countdown.New()
	require.NoError(t, tm.StartText("1.5"))
	assert.Equal(t, countdown.Running, tm.State())
	assert.Equal(t, 90, tm.Total())
	assert.Equal(t, "01:30", tm.Format())
	assert.Equal(t, 1, tm.LoggedMinutes())

	short := countdown.New()
	require.NoError(t, short.StartText("0.25"))
	assert.Equal(t, 15, short.Total())
	assert.Equal(t, 1, short.LoggedMinutes(), "short countdowns still log a minute")

	long := countdown.New()
	require.NoError(t, long.StartText("2.75"))
	assert.Equal(t, 165, long.Total())
	assert.Equal(t, 2, long.LoggedMinutes())
}

func TestTimer_ResetAndRestart(t *testing.T) {
	tm := countdown.New()
	require.NoError(t, tm.StartText(" 25 "))
	assert.Equal(t, 1500, tm.Total())

	require.NoError(t, tm.Start(5), "start while running is ignored")
	assert.Equal(t, 1500, tm.Total())

	tm.Reset()
	assert.Equal(t, countdown.Idle, tm.State())
	assert.Equal(t, 0, tm.Remaining())
	assert.Equal(t, 0.0, tm.Progress())
	assert.Equal(t, "00:00", tm.Format())

	require.NoError(t, tm.Start(2))
	assert.Equal(t, 120, tm.Remaining())
	assert.Equal(t, 2, tm.LoggedMinutes())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", countdown.FormatSeconds(-3))
	assert.Equal(t, "01:05", countdown.FormatSeconds(65))
	assert.Equal(t, "120:00", countdown.FormatSeconds(7200))
}
