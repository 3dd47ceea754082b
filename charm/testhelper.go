// ABOUTME: Test utilities for creating isolated charm clients
// ABOUTME: Uses temporary directories with BadgerDB for test isolation

package charm

import (
	"path/filepath"
	"testing"
)

// NewTestClient creates a client over a temporary BadgerDB directory.
// The directory and database are cleaned up when the test finishes.
func NewTestClient(t *testing.T) *Client {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), AppName)

	c, err := OpenLocal(dataDir)
	if err != nil {
		t.Fatalf("Failed to open local client: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return c
}
