// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"testing"
)

// TestValidateProfileAddr ensures only loopback addresses with unprivileged
// ports are accepted.
func TestValidateProfileAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"127.0.0.1:6060", false},
		{"[::1]:6060", false},
		{portToLocalHostAddr("6060"), false},
		{"127.0.0.1:80", true},
		{"0.0.0.0:6060", true},
		{"192.168.1.1:6060", true},
		{"localhost:6060", true},
		{"127.0.0.1", true},
	}

	for _, test := range tests {
		err := validateProfileAddr(test.addr)
		if gotErr := err != nil; gotErr != test.wantErr {
			t.Errorf("%q: unexpected error result -- got %v, want error %v",
				test.addr, err, test.wantErr)
		}
	}
}

// TestProfileServer ensures the profile server serves the pprof endpoints and
// can be stopped.
func TestProfileServer(t *testing.T) {
	var s profileServer
	if err := s.Start("127.0.0.1:0"); err == nil {
		s.Stop()
		t.Fatal("did not receive expected error for privileged port")
	}

	// Port 0 is rejected by validation, so probe for a free high port.
	var started bool
	for port := 40000; port < 40100 && !started; port++ {
		started = s.Start(fmt.Sprintf("127.0.0.1:%d", port)) == nil
	}
	if !started {
		t.Skip("no free port available for the profile server")
	}

	resp, err := http.Get("http://" + s.Addr() + "/debug/pprof/")
	if err != nil {
		s.Stop()
		t.Fatalf("unable to query profile server: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("unexpected error stopping server: %v", err)
	}
	if s.Addr() != "" {
		t.Fatalf("server still listening on %s", s.Addr())
	}
}
