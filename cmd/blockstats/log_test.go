// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"reflect"
	"testing"

	"github.com/decred/slog"
)

// TestParseAndSetDebugLevels ensures debug level specifications are validated
// and applied to the subsystem loggers.
func TestParseAndSetDebugLevels(t *testing.T) {
	defer setLogLevels(defaultLogLevel)

	tests := []struct {
		name       string
		levelSpec  string
		wantErr    bool
		wantLevels map[string]slog.Level
	}{{
		name:      "all subsystems",
		levelSpec: "debug",
		wantLevels: map[string]slog.Level{
			"BSTS": slog.LevelDebug,
			"MAIN": slog.LevelDebug,
			"RPCS": slog.LevelDebug,
		},
	}, {
		name:      "individual subsystems",
		levelSpec: "BSTS=trace,RPCS=warn",
		wantLevels: map[string]slog.Level{
			"BSTS": slog.LevelTrace,
			"MAIN": slog.LevelDebug,
			"RPCS": slog.LevelWarn,
		},
	}, {
		name:      "invalid level",
		levelSpec: "loud",
		wantErr:   true,
	}, {
		name:      "invalid subsystem",
		levelSpec: "XXXX=info",
		wantErr:   true,
	}, {
		name:      "invalid subsystem level",
		levelSpec: "MAIN=loud",
		wantErr:   true,
	}, {
		name:      "missing pair separator",
		levelSpec: "MAIN=info,RPCS",
		wantErr:   true,
	}}

	for _, test := range tests {
		err := parseAndSetDebugLevels(test.levelSpec)
		if test.wantErr {
			if err == nil {
				t.Errorf("%q: did not receive expected error", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		for subsystem, want := range test.wantLevels {
			if got := subsystemLoggers[subsystem].Level(); got != want {
				t.Errorf("%q: %s level -- got %v, want %v", test.name,
					subsystem, got, want)
			}
		}
	}
}

// TestSupportedSubsystems ensures the subsystems are reported sorted.
func TestSupportedSubsystems(t *testing.T) {
	want := []string{"BSTS", "MAIN", "RPCS"}
	if got := supportedSubsystems(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
