package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/smartprompts/internal/app"
	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/frequency"
	"github.com/alexanderramin/smartprompts/internal/repository"
	"github.com/alexanderramin/smartprompts/internal/service"
	"github.com/alexanderramin/smartprompts/internal/snapshot"
	"github.com/alexanderramin/smartprompts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = "2026-03-10T12:00:00Z"

const applyingSnapshot = `
userId: cli-user
lastLoginAt: "2026-03-10T09:00:00Z"
programs:
  - id: duke
    name: Duke CRNA
    status: in_progress
    applicationDeadline: "2026-03-15"
academics:
  planned:
    - General Chemistry
    - Organic Chemistry
    - Biochemistry
    - Anatomy & Physiology
    - Microbiology
    - Statistics
`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	store := repository.NewSQLitePromptStore(database, testutil.NewTestUoW(database))
	profiles := repository.NewSQLitePriorityProfileRepo(database)
	mgr := frequency.NewManager(store, frequency.DefaultConfig(), nil)
	cat := catalog.Default()

	return &App{
		Nudges:       service.NewNudgeService(cat, mgr, profiles, service.NudgeServiceOptions{Location: time.UTC}),
		Interactions: service.NewInteractionService(mgr),
		Profiles:     service.NewProfileService(profiles),
		Catalog:      cat,
		Location:     time.UTC,
	}
}

func writeSnapshot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestEvaluateCmd_ShowsDeadlineNudge(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	out, err := executeCmd(t, app, "evaluate", path, "--now", testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "id: DEADLINE_7_duke")
	assert.Contains(t, out, "stage applying")
}

func TestEvaluateCmd_JSON(t *testing.T) {
	a := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	out, err := executeCmd(t, a, "evaluate", path, "--now", testNow, "--json", "--dry-run")
	require.NoError(t, err)

	var resp app.EvaluateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Nudges)
	assert.Equal(t, "DEADLINE_7_duke", resp.Nudges[0].ID)
	assert.NotEmpty(t, resp.RunID)
}

func TestEvaluateCmd_DryRunDoesNotRecord(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	_, err := executeCmd(t, app, "evaluate", path, "--now", testNow, "--dry-run")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history", "--now", testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "No interaction history")
}

func TestEvaluateCmd_InvalidSurface(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	_, err := executeCmd(t, app, "evaluate", path, "--surface", "sidebar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_SURFACE")
}

func TestEvaluateCmd_InvalidSnapshot(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, "programs:\n  - name: missing id\n")

	_, err := executeCmd(t, app, "evaluate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, snapshot.ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "INVALID_SNAPSHOT")
}

func TestEvaluateCmd_InvalidSnapshotCode(t *testing.T) {
	a := testApp(t)
	path := writeSnapshot(t, "programs:\n  - id: p1\n    name: Duke\n    status: dreaming\n")

	_, err := executeCmd(t, a, "evaluate", path)
	var evalErr *app.EvaluateError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, app.ErrInvalidSnapshot, evalErr.Code)
	assert.Contains(t, err.Error(), "programs[0].status")
}

func TestEvaluateCmd_MissingFileIsNotInvalidSnapshot(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "evaluate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var evalErr *app.EvaluateError
	assert.False(t, errors.As(err, &evalErr))
}

func TestEvaluateCmd_BadNow(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	_, err := executeCmd(t, app, "evaluate", path, "--now", "tomorrow-ish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--now")
}

func TestDismissCmd_SuppressesNextEvaluation(t *testing.T) {
	app := testApp(t)
	path := writeSnapshot(t, applyingSnapshot)

	out, err := executeCmd(t, app, "dismiss", "DEADLINE_7_duke", "--now", testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "Dismissed DEADLINE_7_duke (1 time(s))")

	out, err = executeCmd(t, app, "evaluate", path, "--now", "2026-03-10T18:00:00Z")
	require.NoError(t, err)
	assert.NotContains(t, out, "id: DEADLINE_7_duke")
	assert.Contains(t, out, "DEADLINE_7_duke (")

	out, err = executeCmd(t, app, "history", "--now", testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "DEADLINE_7_duke")
	assert.Contains(t, out, "dismissed just now")
}

func TestDismissCmd_ConfirmsPermanentWhenInteractive(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	asked := 0
	orig := runConfirm
	runConfirm = func(string, string) (bool, error) {
		asked++
		return true, nil
	}
	t.Cleanup(func() { runConfirm = orig })

	for i := 0; i < 4; i++ {
		_, err := executeCmd(t, app, "dismiss", "EVENT_TOMORROW_ev1", "--now", testNow)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, asked)

	out, err := executeCmd(t, app, "dismiss", "EVENT_TOMORROW_ev1", "--now", testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, asked)
	assert.Contains(t, out, "will not be shown again")
}

func TestDismissCmd_NonInteractiveOnlySuggests(t *testing.T) {
	app := testApp(t)

	var out string
	var err error
	for i := 0; i < 5; i++ {
		out, err = executeCmd(t, app, "dismiss", "EVENT_TOMORROW_ev1", "--now", testNow)
		require.NoError(t, err)
	}
	assert.Contains(t, out, "--forever")
}

func TestDismissCmd_Forever(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dismiss", "CERT_EXPIRING_30_bls", "--forever")
	require.NoError(t, err)
	assert.Contains(t, out, "will not be shown again")

	out, err = executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "hidden")
}

func TestSnoozeAndResetCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "snooze", "DEADLINE_7_duke", "--days", "3", "--now", testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "Snoozed DEADLINE_7_duke until Mar 13, 2026")

	_, err = executeCmd(t, app, "reset", "DEADLINE_7_duke")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No interaction history")
}

func TestSnoozeCmd_RejectsZeroDays(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "snooze", "DEADLINE_7_duke", "--days", "0")
	assert.ErrorIs(t, err, service.ErrInvalidSnoozeDays)
}

func TestCelebrationsCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "celebrations")
	require.NoError(t, err)
	assert.Contains(t, out, "No celebrations waiting")

	out, err = executeCmd(t, app, "celebrations", "drain")
	require.NoError(t, err)
	assert.Contains(t, out, "No celebrations waiting")
}

func TestCatalogCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "catalog", "--engine", "deadline")
	require.NoError(t, err)
	assert.Contains(t, out, "DEADLINE_7")
	assert.NotContains(t, out, "CERT_EXPIRING_30")

	_, err = executeCmd(t, app, "catalog", "--engine", "horoscope")
	assert.Error(t, err)
}

func TestWeightsCmd_ShowAndSet(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "weights")
	require.NoError(t, err)
	assert.Contains(t, out, "0.40")

	out, err = executeCmd(t, app, "weights", "set", "--urgency", "0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "0.70")

	out, err = executeCmd(t, app, "weights")
	require.NoError(t, err)
	assert.Contains(t, out, "0.70")
	assert.Contains(t, out, "0.30")
}

func TestWeightsCmd_RejectsNegative(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "weights", "set", "--recency", "-1")
	assert.Error(t, err)
}

func TestWeightsSetCmd_RequiresAFlag(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "weights", "set")
	assert.Error(t, err)
}
