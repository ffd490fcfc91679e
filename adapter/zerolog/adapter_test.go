package zerolog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanlog/fanlog"
)

type apiSource struct{}

func (apiSource) SourceName() string { return "api" }

type dbSource struct{}

func (dbSource) SourceName() string { return "db" }

type auditLevel struct{}

func (auditLevel) LevelName() string { return "Audit" }

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]interface{}
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestForwardsAdmittedMessages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := New(zerolog.New(&buf))

	b.Log(fanlog.Info, "hi", fanlog.NoSource)
	b.Log(fanlog.Error, "boom", apiSource{})
	b.Sync()

	got := decodeLines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "hi", got[0]["message"])
	_, hasSource := got[0]["source"]
	assert.False(t, hasSource)

	assert.Equal(t, "error", got[1]["level"])
	assert.Equal(t, "boom", got[1]["message"])
	assert.Equal(t, "api", got[1]["source"])
}

func TestAppliesOwnFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := New(zerolog.New(&buf))
	b.SetLevels(fanlog.Error)
	b.ExcludeSource(dbSource{})

	b.Log(fanlog.Info, "level disabled", fanlog.NoSource)
	b.Log(fanlog.Error, "source filtered", dbSource{})
	b.Log(fanlog.Error, "kept", apiSource{})

	got := decodeLines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0]["message"])
}

func TestCustomLevelKeepsName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := New(zerolog.New(&buf))
	b.EnableLevels(auditLevel{})

	b.Log(auditLevel{}, "checked", fanlog.NoSource)

	got := decodeLines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Audit", got[0]["level_name"])
	assert.Equal(t, "checked", got[0]["message"])
}

func TestDispatcherIntegration(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := New(zerolog.New(&buf))
	d := fanlog.NewDispatcher(b)
	defer d.Close()

	d.DisableLevels(fanlog.Debug)
	d.Warn("careful", apiSource{})
	d.Debug("dropped", apiSource{})
	d.Sync()

	got := decodeLines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0]["level"])
	assert.Equal(t, "careful", got[0]["message"])
}
