// Package sink turns a computed grid layout into output formats.
//
// [Layout] is the serialized form of one pass over a board: the measured
// container width, the column model and the geometry of every cell. It is the
// value cached by the pipeline, stored by the server and returned by the API,
// so it carries both JSON and BSON tags.
//
// Renderers:
//   - [RenderJSON] pretty-printed JSON, the interchange format
//   - [RenderSVG] a static picture of the grid
//   - [RenderText] a terminal drawing styled with lipgloss
package sink
