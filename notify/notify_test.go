package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteEmptyCommand(t *testing.T) {
	executor := &ExecCommandExecutor{}

	if err := executor.Execute(context.Background(), ""); err != nil {
		t.Errorf("Execute() with empty command should be a no-op, got %v", err)
	}
	if err := executor.Execute(context.Background(), "   "); err != nil {
		t.Errorf("Execute() with blank command should be a no-op, got %v", err)
	}
}

func TestExecuteRunsCommand(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	executor := &ExecCommandExecutor{}

	if err := executor.Execute(context.Background(), "touch "+marker); err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("Execute() did not run the command: %v", err)
	}
}

func TestExecuteQuotedArguments(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "name with spaces")
	executor := &ExecCommandExecutor{}

	command := `touch "` + target + `"`
	if err := executor.Execute(context.Background(), command); err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Errorf("Execute() did not honor quoting: %v", err)
	}
}

func TestExecuteParseError(t *testing.T) {
	executor := &ExecCommandExecutor{}

	err := executor.Execute(context.Background(), `touch "unterminated`)
	if err == nil {
		t.Fatal("Execute() expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse command") {
		t.Errorf("Execute() error = %v, want parse failure", err)
	}
}

func TestExecuteCommandFailure(t *testing.T) {
	executor := &ExecCommandExecutor{}

	err := executor.Execute(context.Background(), "false")
	if err == nil {
		t.Fatal("Execute() expected error for failing command, got nil")
	}
	if !strings.Contains(err.Error(), "command failed") {
		t.Errorf("Execute() error = %v, want command failure", err)
	}
}

func TestExecuteMissingCommand(t *testing.T) {
	executor := &ExecCommandExecutor{}

	if err := executor.Execute(context.Background(), "this-command-does-not-exist"); err == nil {
		t.Error("Execute() expected error for missing command, got nil")
	}
}
