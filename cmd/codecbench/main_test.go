package main

import (
	"io"
	"strings"
	"testing"
)

func TestExecuteSurfacesMissingFlagError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when required flags are missing")
	}
	if !strings.Contains(err.Error(), "required flag") {
		t.Errorf("error = %v, want it to name the missing required flags", err)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
