// Package testing switches the binaries into test mode when imported by a
// test package, so a test never opens Redis or reaches the public API.
package testing

import (
	"os"
	stdtesting "testing"

	_ "github.com/noah-isme/userdir/internal/testing/guard"
)

const unroutableBackend = "http://127.0.0.1:0"

func init() {
	if os.Getenv("BACKEND_URL") == "" {
		_ = os.Setenv("BACKEND_URL", unroutableBackend)
	}
}

// TestMain runs m with test mode already set by the package init.
func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}
