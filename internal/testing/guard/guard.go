// Package guard marks the process as running under test. Import it for side
// effects from test files that build application components.
package guard

import "os"

// EnvVar is the flag read by app.InTestMode.
const EnvVar = "USERDIR_TEST_MODE"

func init() {
	if os.Getenv(EnvVar) == "" {
		_ = os.Setenv(EnvVar, "1")
	}
}
