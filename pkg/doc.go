// Package pkg provides the core libraries for Autogrid grid layouts.
//
// # Overview
//
// Autogrid places blocks of varying column span into a container split into
// equal-width columns. Each block goes under the contiguous run of columns
// whose tallest column is shortest, so vertical gaps stay small, and the
// layout follows the container as it resizes. The pkg directory is organized
// into four main areas:
//
//  1. [grid] - The layout engine (column count, placement, passes, scheduling)
//  2. [surface], [schedule] - Headless collaborators the engine runs against
//  3. [board], [pipeline], [sink] - Boards in, layouts and drawings out
//  4. [cache], [store], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Autogrid:
//
//	Board file (TOML/JSON)
//	         ↓
//	    [board] package (parse + validate)
//	         ↓
//	    [grid] package on a [surface] viewport (layout passes)
//	         ↓
//	    [pipeline] package (snapshot → layout, cached)
//	         ↓
//	    [sink] package (JSON/SVG/text output)
//
// # Quick Start
//
// Lay out a board and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/autogrid/pkg/board"
//	    "github.com/matzehuels/autogrid/pkg/pipeline"
//	    "github.com/matzehuels/autogrid/pkg/sink"
//	)
//
//	// 1. Load the board
//	b, _ := board.ReadFile("moodboard.toml")
//
//	// 2. Compute the layout
//	runner := pipeline.NewRunner(nil, nil, nil)
//	l, _ := runner.Layout(context.Background(), b, pipeline.Options{Width: 1200})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(l)
//
// Embedding the engine directly is a matter of implementing [grid.Container]
// and [grid.Wrapper] for the host's elements; [surface] is the reference
// implementation used by the CLI, the server and the tests.
//
// # Main Packages
//
// ## Engine
//
//   - [grid]: Column derivation, the shortest-run placement algorithm, layout
//     passes with restart on width change, coalesced invalidation and the
//     debounced resize resync.
//   - [schedule]: [schedule.Loop] runs tasks on one goroutine;
//     [schedule.Manual] is a virtual clock for deterministic tests.
//   - [surface]: A headless viewport, container and box model whose
//     container loses a scrollbar's width when its content overflows.
//
// ## Boards and Output
//
//   - [board]: Board files with grid settings, viewport and cells.
//   - [pipeline]: Runs the engine headlessly and caches layouts and renders.
//   - [sink]: Layout JSON, SVG and terminal text renderers.
//
// ## Infrastructure
//
//   - [cache]: File and Redis caches behind one interface.
//   - [store]: Board persistence in memory or MongoDB.
//   - [observability]: Hooks for grid passes, pipeline stages, caches and HTTP.
//   - [errors]: Coded errors and input validation.
//   - [buildinfo]: Version information injected at build time.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/grid
// [grid.Container]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/grid#Container
// [grid.Wrapper]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/grid#Wrapper
// [schedule]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/schedule
// [schedule.Loop]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/schedule#Loop
// [schedule.Manual]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/schedule#Manual
// [surface]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/surface
// [board]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/board
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/pipeline
// [sink]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/sink
// [cache]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/autogrid/pkg/buildinfo
package pkg
