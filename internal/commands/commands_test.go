package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/store"
	"tasklist/internal/testutil"
)

// runCommand is a helper to run a command with a store over FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:     t.TempDir(),
		BaseURL: "http://stub",
		Quiet:   quiet,
	}

	var st *store.Store
	if svc != nil {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		st = store.New(svc, logger)
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, st, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "help", stdout)
}

func TestListCommand_WithTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("1", "Buy milk", "", false)
	svc.SeedTask("2", "Buy eggs", "", true)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "   1  [ ]  Buy milk\n   2  [x]  Buy eggs\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("connection refused")

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: failed to refresh tasks\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "created 1\n" {
		t.Errorf("expected created output, got %q", stdout)
	}
	if svc.CallCount("CreateTask") != 1 {
		t.Errorf("expected one create call, got %d", svc.CallCount("CreateTask"))
	}
}

func TestAddCommand_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.CallCount("CreateTask") != 0 {
		t.Error("expected no create call")
	}
}

func TestAddCommand_Done(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetDone(true)
	_, _, code := runCommand(t, cmd, svc, []string{"Already", "finished"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}

	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !tasks[0].IsComplete {
		t.Errorf("expected one complete task, got %+v", tasks)
	}
}

func TestToggleCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("a1", "A", "", false)
	svc.SeedTask("b2", "B", "", false)

	cmd := &commands.ToggleCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if !tasks[1].IsComplete || tasks[0].IsComplete {
		t.Errorf("expected only task 2 toggled, got %+v", tasks)
	}
}

func TestToggleCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("a1", "A", "", false)

	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestToggleCommand_RefRequired(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestToggleCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("a1", "A", "", false)
	svc.MarkCompleteErr = errors.New("500")

	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: failed to update task a1\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("a1", "A", "", false)
	svc.SeedTask("b2", "B", "", false)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].ID != "b2" {
		t.Errorf("expected only b2 to remain, got %+v", tasks)
	}
}

func TestConfigCommand_ShowsBaseURL(t *testing.T) {
	cmd := &commands.ConfigCmd{}
	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "base_url: http://stub\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestConfigCommand_SavesURL(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	cmd := &commands.ConfigCmd{}
	cmd.SetURL("http://localhost:9999")

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, errBuf.String())
	}

	t.Setenv(config.BaseURLEnv, "")
	t.Setenv(config.TokenEnv, "")
	loaded, err := config.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BaseURL != "http://localhost:9999" {
		t.Errorf("expected saved base URL, got %q", loaded.BaseURL)
	}
}

func TestRmCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("a1", "A", "", false)
	svc.DeleteTaskErr = errors.New("network unreachable")

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: failed to delete task a1\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 {
		t.Errorf("expected task to survive failed delete, got %+v", tasks)
	}
}
