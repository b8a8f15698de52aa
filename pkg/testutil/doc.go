// Package testutil provides helpers shared by package tests.
//
// Key components:
//   - NewMemFS / SeedFiles / ReadFile: in-memory afero filesystems
//   - fake transforms implementing the transform interfaces
//   - OutcomeRecorder: thread-safe collection of dispatch outcomes
//   - CaptureLogs: routes the global logger into a buffer
//
// Tests should define their file trees inline and use in-memory
// filesystems unless they exercise the real watcher.
package testutil
