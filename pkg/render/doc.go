// Package render exports the dependency graph a session observed.
//
// # Overview
//
// Every walk records which packages it touched and which dependency
// relations it resolved through the index. This package turns that record
// into shareable artifacts:
//
//   - Graphviz DOT source ([ToDOT])
//   - SVG, rendered in-process ([RenderSVG])
//   - JSON for further tooling ([WriteJSON])
//
// # Usage
//
// Capture the graph after walking, then pick a format:
//
//	g := render.FromSession(sess)
//	dot := render.ToDOT(g)
//	svg, err := render.RenderSVG(ctx, dot)
//
// The generated DOT uses left-to-right layout (rankdir=LR) with rounded
// box nodes, and can also be processed with external Graphviz tools.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], so no system
// Graphviz installation is required.
package render
