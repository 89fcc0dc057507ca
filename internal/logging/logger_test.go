package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "", want: zapcore.InfoLevel},
		{input: "WARNING", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "loud", want: zapcore.InfoLevel, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := Wrap(zap.New(core)).With(String("collection", "blog"))

	logger.Info("indexed collection", Int("items", 3))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["collection"] != "blog" {
		t.Fatalf("collection field = %v, want blog", fields["collection"])
	}
	if fields["items"] != int64(3) {
		t.Fatalf("items field = %v (%T), want 3", fields["items"], fields["items"])
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("New() expected error for unknown level")
	}
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
}
