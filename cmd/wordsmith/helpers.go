// Shared helpers for wordsmith CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/wordsmith/internal/completion"
	"github.com/mesh-intelligence/wordsmith/internal/sqlite"
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userErr(err error) error { return &exitError{code: exitUserError, err: err} }
func sysErr(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps err to an exit code. Errors without a code are system
// errors; cobra flag and argument errors are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if isUsageError(err) {
		return exitUserError
	}
	return exitSysError
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "accepts ", "requires ", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// attachStore opens the vocabulary store in the resolved data directory.
// The caller must defer store.Detach().
func (a *app) attachStore() (*sqlite.Store, error) {
	store := sqlite.NewStore()
	if err := store.Attach(a.cfg); err != nil {
		return nil, sysErr(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// newClient builds the completion client for the configured provider.
func (a *app) newClient() (completion.Client, error) {
	client, err := completion.New(a.cfg, a.log)
	if err != nil {
		if strings.TrimSpace(a.cfg.APIKey) == "" {
			return nil, userErr(fmt.Errorf("%w (set %s or %s)", err, a.v.GetString(cfgKeyTokenEnv), envAPIKey))
		}
		return nil, userErr(err)
	}
	return client, nil
}

// outputPath returns the lesson document path from the flag or config.
func (a *app) outputPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.v.GetString(cfgKeyOutput)
}

// sourcePath returns the path of the raw lesson text saved beside the
// lesson document at output.
func sourcePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".txt"
}

// feedbackPath returns the feedback document path beside the lesson
// document at output.
func feedbackPath(output string) string {
	return filepath.Join(filepath.Dir(output), "feedback.html")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
