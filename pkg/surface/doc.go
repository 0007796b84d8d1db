// Package surface is a headless stand-in for the page a grid lays out on.
//
// It implements every collaborator package grid consumes: a [Viewport] that
// emits resize notifications, a [Container] that measures its width, delivers
// structural mutation notifications and creates [Box] wrappers, and the boxes
// themselves, which report a height computed from their [Content].
//
// The container models the one piece of browser behaviour the engine has to
// defend against: when the laid out content grows taller than the viewport a
// vertical scrollbar appears and the container loses [Viewport] scrollbar
// width. That is enough to exercise the engine's restart path from the CLI,
// the API and tests without a browser.
//
// Mutation notifications are batched and delivered through a scheduler, the
// way a MutationObserver delivers records after the current task.
package surface
