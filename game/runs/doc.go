// Package runs keeps completed knight runs in memory so that the server
// surfaces can list and fetch them after the fact.
//
// Runs are identified by UUIDs, looked up case-insensitively, and expire
// after a configurable age. Nothing is persisted; restarting the process
// clears the registry.
//
// Usage:
//
//	registry := runs.NewRegistry()
//	run, _ := registry.Add(&runs.Run{Commands: commands, Result: doc})
//	latest := registry.List(10)
//	removed := registry.CleanupExpired(24 * time.Hour)
package runs
