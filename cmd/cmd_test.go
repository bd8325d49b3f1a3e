package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/XSaadiX/Quiz-app/internal/catalog"
	"github.com/XSaadiX/Quiz-app/internal/persist"
	"github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/store"
)

// isolate keeps config discovery and logging inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("QUIZAPP_DB", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// saveAnswer stores one answer for the seed catalog's first question under
// the default storage key.
func saveAnswer(t *testing.T, dbPath string) (int, string) {
	t.Helper()
	return saveAnswerAt(t, dbPath, "quiz-progress")
}

func saveAnswerAt(t *testing.T, dbPath, key string) (int, string) {
	t.Helper()
	s, err := store.Open(store.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer s.Close()

	questions, err := catalog.Seed().Build()
	require.NoError(t, err)
	q, err := quiz.New(questions, quiz.WithStorage(persist.NewAdapter(s, zap.NewNop()), key))
	require.NoError(t, err)

	first := q.Questions()[0]
	require.NoError(t, q.SetAnswer(first.ID, first.Options[0]))
	return first.ID, first.Options[0]
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	if !strings.HasPrefix(out, "quizapp ") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestCatalogSeedValidateConvert(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "catalog", "seed")
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "seed.json")
	xlsxPath := filepath.Join(dir, "seed.xlsx")

	_, err = execute(t, "catalog", "convert", writeFile(t, dir, "in.json", out), jsonPath)
	require.NoError(t, err)

	out, err = execute(t, "catalog", "validate", jsonPath)
	require.NoError(t, err)
	if !strings.Contains(out, "12 questions OK") {
		t.Errorf("unexpected validate output %q", out)
	}

	_, err = execute(t, "catalog", "convert", jsonPath, xlsxPath)
	require.NoError(t, err)

	c, err := catalog.Load(xlsxPath)
	require.NoError(t, err)
	if len(c.Questions) != 12 {
		t.Errorf("expected 12 questions from xlsx, got %d", len(c.Questions))
	}
}

func TestCatalogValidateRejects(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, dir, "bad.json", `{"questions":[]}`)

	_, err := execute(t, "catalog", "validate", bad)
	require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestExportIncludesSavedAnswer(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "quiz.db")
	id, answer := saveAnswer(t, dbPath)

	out, err := execute(t, "export", "--db", dbPath, "--catalog=", "--output=")
	require.NoError(t, err)

	var snap quiz.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	if snap.Statistics.Answered != 1 {
		t.Errorf("expected 1 answered, got %d", snap.Statistics.Answered)
	}
	for _, q := range snap.Questions {
		if q.ID == id {
			if q.SelectedAnswer == nil || *q.SelectedAnswer != answer {
				t.Errorf("expected saved answer %q, got %v", answer, q.SelectedAnswer)
			}
		}
	}
}

func TestStatsJSON(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "quiz.db")
	saveAnswer(t, dbPath)

	out, err := execute(t, "stats", "--db", dbPath, "--catalog=", "--sessions=false", "--json")
	require.NoError(t, err)

	var stats quiz.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	if stats.Answered != 1 || stats.Total != 12 {
		t.Errorf("expected 1/12 answered, got %d/%d", stats.Answered, stats.Total)
	}
	if stats.Phase != quiz.PhaseInProgress.String() {
		t.Errorf("expected phase %q, got %q", quiz.PhaseInProgress, stats.Phase)
	}
}

func TestStatsTableWithoutProgress(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "stats", "--db", filepath.Join(dir, "empty.db"), "--catalog=", "--sessions=false", "--json=false")
	require.NoError(t, err)
	if !strings.Contains(out, "No saved progress.") {
		t.Errorf("expected no-progress notice, got %q", out)
	}
	if !strings.Contains(out, "0/12") {
		t.Errorf("expected 0/12 answered, got %q", out)
	}
}

func TestResetClearsProgress(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "quiz.db")
	saveAnswer(t, dbPath)

	out, err := execute(t, "reset", "--db", dbPath, "--catalog=", "--all=false")
	require.NoError(t, err)
	if !strings.Contains(out, "quiz-progress") {
		t.Errorf("expected storage key in output, got %q", out)
	}

	s, err := store.Open(store.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(context.Background(), "quiz-progress")
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestSessionsListedAndResetAll(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "quiz.db")
	saveAnswerAt(t, dbPath, "team-b")
	saveAnswerAt(t, dbPath, "team-a")

	out, err := execute(t, "stats", "--db", dbPath, "--catalog=", "--json=false", "--sessions")
	require.NoError(t, err)
	assert.Equal(t, "team-a\nteam-b\n", out)

	out, err = execute(t, "reset", "--db", dbPath, "--catalog=", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, `"team-a"`)
	assert.Contains(t, out, `"team-b"`)

	out, err = execute(t, "stats", "--db", dbPath, "--catalog=", "--json=false", "--sessions")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestResolveLogPath(t *testing.T) {
	isolate(t)

	p, err := resolveLogPath("-")
	require.NoError(t, err)
	if p != "" {
		t.Errorf("expected stderr for \"-\", got %q", p)
	}

	p, err = resolveLogPath("")
	require.NoError(t, err)
	if !strings.HasSuffix(p, filepath.Join("quizapp", "quizapp.log")) {
		t.Errorf("unexpected default log path %q", p)
	}

	p, err = resolveLogPath("/tmp/x.log")
	require.NoError(t, err)
	if p != "/tmp/x.log" {
		t.Errorf("expected configured path, got %q", p)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
