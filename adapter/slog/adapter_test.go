package slogadapter

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanlog/fanlog"
)

type apiSource struct{}

func (apiSource) SourceName() string { return "api" }

type dbSource struct{}

func (dbSource) SourceName() string { return "db" }

func newTextBackend() (*Backend, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
	return New(slog.New(h)), &buf
}

func logLines(buf *bytes.Buffer) []string {
	s := strings.TrimSuffix(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestForwardsAdmittedMessages(t *testing.T) {
	t.Parallel()

	b, buf := newTextBackend()
	b.Log(fanlog.Info, "hi", fanlog.NoSource)
	b.Log(fanlog.Error, "boom", apiSource{})
	b.Sync()

	got := logLines(buf)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "level=INFO")
	assert.Contains(t, got[0], "msg=hi")
	assert.NotContains(t, got[0], "source=")
	assert.Contains(t, got[1], "level=ERROR")
	assert.Contains(t, got[1], "source=api")
}

func TestAppliesOwnFilters(t *testing.T) {
	t.Parallel()

	b, buf := newTextBackend()
	b.SetLevels(fanlog.Error)
	b.ExcludeSource(dbSource{})

	b.Log(fanlog.Info, "level disabled", fanlog.NoSource)
	b.Log(fanlog.Error, "source filtered", dbSource{})
	b.Log(fanlog.Error, "kept", apiSource{})

	got := logLines(buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "msg=kept")
}

func TestTraceMapsBelowDebug(t *testing.T) {
	t.Parallel()

	b, buf := newTextBackend()
	b.Log(fanlog.Trace, "deep", fanlog.NoSource)

	got := logLines(buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "level=DEBUG-4")
}
