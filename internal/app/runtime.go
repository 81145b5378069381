package app

import (
	"os"
	"sync/atomic"
)

const testModeEnv = "USERDIR_TEST_MODE"

const (
	testModeUnknown int32 = iota
	testModeOff
	testModeOn
)

var testMode atomic.Int32

// InTestMode reports whether the binaries should skip startup side effects,
// such as connecting to Redis or loading users from the backend.
func InTestMode() bool {
	if testMode.Load() == testModeUnknown {
		RefreshTestMode()
	}
	return testMode.Load() == testModeOn
}

// RefreshTestMode re-reads USERDIR_TEST_MODE.
func RefreshTestMode() {
	if os.Getenv(testModeEnv) == "1" {
		testMode.Store(testModeOn)
		return
	}
	testMode.Store(testModeOff)
}
