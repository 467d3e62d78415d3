package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goaplanner/agent/execution"
)

// No HTTP control-plane is in scope (SPEC_FULL.md §6: multi-character
// coordination is a non-goal), so status/stop talk to a running `agent
// run` the same way a PID file does: a small JSON status dump and a
// stop-flag file per character under the OS temp dir. `run` polls the
// flag file once per status tick; `stop` just creates it.

func runtimeDir(character string) string {
	return filepath.Join(os.TempDir(), "goap-agent", character)
}

func statusFilePath(character string) string {
	return filepath.Join(runtimeDir(character), "status.json")
}

func stopFlagPath(character string) string {
	return filepath.Join(runtimeDir(character), "stop.flag")
}

func writeStatusFile(character string, report execution.StatusReport) error {
	dir := runtimeDir(character)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statusFilePath(character), data, 0o644)
}

func readStatusFile(character string) (execution.StatusReport, error) {
	var report execution.StatusReport
	data, err := os.ReadFile(statusFilePath(character))
	if err != nil {
		return report, fmt.Errorf("no status found for character %q (is it running?): %w", character, err)
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, err
	}
	return report, nil
}

func stopRequested(character string) bool {
	_, err := os.Stat(stopFlagPath(character))
	return err == nil
}

func requestStop(character string) error {
	dir := runtimeDir(character)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(stopFlagPath(character), []byte("stop\n"), 0o644)
}

func clearStopFlag(character string) {
	os.Remove(stopFlagPath(character))
}
