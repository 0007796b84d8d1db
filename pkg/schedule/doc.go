// Package schedule provides the cooperative timelines that drive a grid.
//
// A grid never runs two layout passes at once and never starts work from a
// notification callback directly: everything deferred goes through a
// scheduler. Two implementations are provided:
//
//   - [Loop] runs tasks on a single goroutine using real timers. It is what an
//     interactive program (the watch TUI, a long-lived server session) uses.
//
//   - [Manual] keeps a virtual clock that only moves when told to. Headless
//     one-shot layouts and tests use it to make debouncing deterministic.
//
// Both hand out cancel functions from Schedule; cancelling a task that already
// ran is a no-op.
//
//	loop := schedule.NewLoop()
//	defer loop.Close()
//	cancel := loop.Schedule(200*time.Millisecond, resync)
//	cancel() // superseded by a newer resize event
package schedule
