package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHashTokenCommand(t *testing.T) {
	const token = "a-long-admin-token-0123"

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hash-token", token})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		t.Errorf("printed hash does not match token: %v", err)
	}
}

func TestHashTokenRejectsShortToken(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash-token", "short"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for short token")
	}
}

func TestCommandsRegistered(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"serve", "migrate", "seed", "hash-token"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found == nil || found.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
