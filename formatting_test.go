package fanlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicFormatter(t *testing.T) {
	t.Parallel()

	f := BasicFormatter{}

	assert.Equal(t, "Info: hi", f.Format(Info, "hi", NoSource, false))
	assert.Equal(t, "[X] Error: boom", f.Format(Error, "boom", xSource{}, false))
	assert.Equal(t, "[api] Audit: checked", f.Format(auditLevel{}, "checked", apiSource{}, false))

	// The style hint is ignored.
	assert.Equal(t, "Info: hi", f.Format(Info, "hi", NoSource, true))
	assert.Equal(t, "Info: hi", f.Format(Info, "hi", nil, false))
}

func TestANSIFormatterUnstyled(t *testing.T) {
	t.Parallel()

	f := ANSIFormatter{}

	got := f.Format(Error, "boom", xSource{}, false)
	assert.Equal(t, "[Error] X: boom", got)
	assert.NotContains(t, got, "\x1b", "unstyled output carries no escape sequences")

	assert.Equal(t, "[Info] hi", f.Format(Info, "hi", NoSource, false))
}

func TestANSIFormatterStyled(t *testing.T) {
	t.Parallel()

	f := ANSIFormatter{}

	got := f.Format(Error, "boom", xSource{}, true)
	assert.Equal(t, "[\x1b[91mError\x1b[0m] \x1b[1mX\x1b[0m: boom", got)
	assert.True(t, strings.HasPrefix(got, "[\x1b[91m"), "level opens with bright red")
	assert.Contains(t, got, "\x1b[0m]", "reset lands before the closing bracket")

	// NoSource drops the source segment, separator included.
	assert.Equal(t, "[\x1b[92mInfo\x1b[0m] hi", f.Format(Info, "hi", NoSource, true))
}

func TestANSIFormatterColorMap(t *testing.T) {
	t.Parallel()

	f := ANSIFormatter{}
	tests := []struct {
		level Level
		color string
	}{
		{Error, "\x1b[91m"},
		{Warn, "\x1b[33m"},
		{Info, "\x1b[92m"},
		{Debug, "\x1b[94m"},
		{Trace, "\x1b[96m"},
		{auditLevel{}, "\x1b[93m"}, // unknown levels fall back to bright yellow
	}
	for _, tt := range tests {
		got := f.Format(tt.level, "m", NoSource, true)
		assert.Equal(t, "["+tt.color+tt.level.LevelName()+"\x1b[0m] m", got)
	}
}

// TestANSIFormatterResetDiscipline: every styled segment is closed before
// the text that follows it, so nothing downstream inherits color.
func TestANSIFormatterResetDiscipline(t *testing.T) {
	t.Parallel()

	got := ANSIFormatter{}.Format(Warn, "tail", xSource{}, true)
	assert.Equal(t, 2, strings.Count(got, "\x1b[0m"))
	assert.True(t, strings.HasSuffix(got, ": tail"), "message text is never styled")
}
