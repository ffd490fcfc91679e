package fanlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xclock/adapter/frozen"
)

// freezeClock pins the package clock for the duration of a test. Tests
// using it share global clock state and must not run in parallel.
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	old := xclock.Default()
	t.Cleanup(func() { xclock.SetDefault(old) })
	xclock.SetDefault(frozen.New(at))
}

func TestAbsoluteTimeFormatter(t *testing.T) {
	freezeClock(t, time.Unix(1700000000, 250*int64(time.Millisecond)))

	plain := NewAbsoluteTimeFormatter(false)
	assert.Equal(t, "[1700000000] [Info] hi", plain.Format(Info, "hi", NoSource, false))
	assert.Equal(t, "[1700000000] [Error] X: boom", plain.Format(Error, "boom", xSource{}, false))

	sub := NewAbsoluteTimeFormatter(true)
	assert.Equal(t, "[1700000000.250] [Info] hi", sub.Format(Info, "hi", NoSource, false))
}

func TestAbsoluteTimeFractionIsZeroPadded(t *testing.T) {
	freezeClock(t, time.Unix(1700000000, 7*int64(time.Millisecond)))

	sub := NewAbsoluteTimeFormatter(true)
	assert.Equal(t, "[1700000000.007] [Info] hi", sub.Format(Info, "hi", NoSource, false))
}

func TestRelativeTimeFormatter(t *testing.T) {
	start := time.Unix(1700000000, 0)
	freezeClock(t, start)

	f := NewRelativeTimeFormatter(true)
	assert.Equal(t, "[0.000] [Info] hi", f.Format(Info, "hi", NoSource, false))

	xclock.SetDefault(frozen.New(start.Add(90*time.Second + 120*time.Millisecond)))
	assert.Equal(t, "[90.120] [Info] hi", f.Format(Info, "hi", NoSource, false))

	plain := NewRelativeTimeFormatter(false)
	assert.Equal(t, "[0] [Warn] X: w", plain.Format(Warn, "w", xSource{}, false))
}

// TestRelativeTimeGoesNegative pins the documented absence of a monotonic
// clock: moving the system clock behind the creation instant yields a
// negative elapsed time.
func TestRelativeTimeGoesNegative(t *testing.T) {
	start := time.Unix(1700000000, 0)
	freezeClock(t, start)

	f := NewRelativeTimeFormatter(true)
	xclock.SetDefault(frozen.New(start.Add(-30 * time.Second)))
	assert.Equal(t, "[-30.000] [Info] hi", f.Format(Info, "hi", NoSource, false))

	plain := NewRelativeTimeFormatter(false)
	// plain was created at the already-rewound instant; rewind further.
	xclock.SetDefault(frozen.New(start.Add(-45 * time.Second)))
	assert.Equal(t, "[-15] [Info] hi", plain.Format(Info, "hi", NoSource, false))
}

func TestPatternTimeFormatter(t *testing.T) {
	freezeClock(t, time.Date(2024, 3, 10, 1, 2, 3, 0, time.UTC))

	f := NewPatternTimeFormatter("%Y-%m-%d %H:%M:%S")
	assert.Equal(t, "[2024-03-10 01:02:03] [Info] hi", f.Format(Info, "hi", NoSource, false))
	assert.Equal(t, "[2024-03-10 01:02:03] [Error] X: boom", f.Format(Error, "boom", xSource{}, false))
}

// An invalid pattern must not suppress the message; the timestamp segment
// carries the sentinel instead.
func TestPatternTimeFormatterInvalidPattern(t *testing.T) {
	freezeClock(t, time.Unix(1700000000, 0))

	f := NewPatternTimeFormatter("%Q")
	assert.Equal(t, "[FORMATTING ERROR] [Info] hi", f.Format(Info, "hi", NoSource, false))
	assert.Equal(t, "[FORMATTING ERROR] [Error] X: boom", f.Format(Error, "boom", xSource{}, false))
}
