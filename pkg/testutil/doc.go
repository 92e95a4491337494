// Package testutil provides helpers shared by eventmgr tests.
//
// Key components:
//   - CreateFile: write fixture files into a test temp dir
//   - IsolateEnv: keep EVENTMGR_* variables and the user's XDG state out of a test
//   - Recorder: handler functions that record the order they were called in
//
// Test data should be defined inline in the test, not in external files.
package testutil
