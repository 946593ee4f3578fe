// Package render draws laid-out visual trees as SVG and formats the
// flat artifact views (token list, symbol table, code listings). It is
// the presentation consumer of the layout package: it assigns node
// positions, exposes their measured boxes through layout.Surface, and
// lets the geometry pass compute the connector edges it draws.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/compviz-xyz/go-compviz/layout"
)

// Visual constants for tree rendering
const (
	defaultWidth  = 1000.0
	levelHeight   = 70.0
	topMargin     = 40.0
	charWidth     = 8.0 // monospace advance used for box measurement
	boxHeight     = 24.0
	boxPaddingX   = 8.0
	minBoxWidth   = 28.0
	bottomPadding = 30.0
)

// TreeSVGOptions configures tree rendering.
type TreeSVGOptions struct {
	Width float64
}

// DefaultTreeSVGOptions returns the standard rendering configuration.
func DefaultTreeSVGOptions() *TreeSVGOptions {
	return &TreeSVGOptions{Width: defaultWidth}
}

// treeSurface holds the positioned label boxes of one rendered tree.
// Origin is the container's top-left corner, so box coordinates are
// already container-relative.
type treeSurface struct {
	boxes map[layout.NodeID]layout.Rect
	depth int
}

func (s *treeSurface) Bounds(id layout.NodeID) (layout.Rect, bool) {
	r, ok := s.boxes[id]
	return r, ok
}

func (s *treeSurface) Origin() layout.Point {
	return layout.Point{}
}

// measure computes a node's label box width from its display text.
func measure(display string) float64 {
	w := charWidth*float64(len(display)) + 2*boxPaddingX
	if w < minBoxWidth {
		w = minBoxWidth
	}
	return w
}

// place positions the tree with the halving-offset scheme: the root is
// centered, each child sits a level lower offset by xOff, and the
// offset halves per level. With at most two children the first goes
// left and the second right; a single child keeps the left slot.
func place(v *layout.VisualNode, s *treeSurface, x, y, xOff float64, depth int) {
	if v == nil {
		return
	}
	if depth > s.depth {
		s.depth = depth
	}
	w := measure(v.Display)
	s.boxes[v.ID] = layout.Rect{X: x - w/2, Y: y, W: w, H: boxHeight}

	offsets := []float64{-xOff, xOff}
	for i, child := range v.Children {
		place(child, s, x+offsets[i], y+levelHeight, xOff/2, depth+1)
	}
}

// layoutSurface renders the tree's geometry without drawing: every node
// gets a measured, positioned box. This is the step connector geometry
// depends on; edges cannot be computed from the abstract tree alone.
func layoutSurface(root *layout.VisualNode, opts *TreeSVGOptions) *treeSurface {
	s := &treeSurface{boxes: make(map[layout.NodeID]layout.Rect)}
	if root != nil {
		place(root, s, opts.Width/2, topMargin, opts.Width/4, 0)
	}
	return s
}

// RenderTreeSVG renders a visual tree with its connector edges. A nil
// tree renders an empty placeholder frame.
func RenderTreeSVG(root *layout.VisualNode, opts *TreeSVGOptions) string {
	if opts == nil {
		opts = DefaultTreeSVGOptions()
	}

	s := layoutSurface(root, opts)
	height := topMargin + float64(s.depth+1)*levelHeight + bottomPadding
	if root == nil {
		height = topMargin + bottomPadding
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`,
		opts.Width, height, opts.Width, height))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%.0f" height="%.0f" fill="#1e1e1e" rx="8"/>`, opts.Width, height))
	buf.WriteString("\n")

	buf.WriteString(`<defs>`)
	buf.WriteString(`<style>`)
	buf.WriteString(`.node { fill: #2d2d2d; stroke: #555; stroke-width: 1; rx: 4; }`)
	buf.WriteString(`.node-text { font-family: Consolas, monospace; font-size: 13px; fill: #fff; text-anchor: middle; dominant-baseline: middle; }`)
	buf.WriteString(`.operator { stroke: #e8a33d; }`)
	buf.WriteString(`.id { stroke: #62b0fa; }`)
	buf.WriteString(`.number { stroke: #62fa75; }`)
	buf.WriteString(`.value { stroke: #999; }`)
	buf.WriteString(`.coerced { stroke: #fa6262; stroke-dasharray: 4 2; }`)
	buf.WriteString(`.connector { stroke: #666; stroke-width: 1; }`)
	buf.WriteString(`</style>`)
	buf.WriteString(`</defs>`)
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("</svg>\n")
		return buf.String()
	}

	// Edges first so boxes draw over the line ends
	for _, e := range layout.ComputeEdges(root, s) {
		buf.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="connector"/>`,
			e.From.X, e.From.Y, e.To.X, e.To.Y))
		buf.WriteString("\n")
	}

	drawNodes(&buf, root, s)

	buf.WriteString("</svg>\n")
	return buf.String()
}

func drawNodes(buf *bytes.Buffer, v *layout.VisualNode, s *treeSurface) {
	box, ok := s.boxes[v.ID]
	if ok {
		class := "node " + strings.Join(v.Classes(), " ")
		buf.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" class="%s"/>`,
			box.X, box.Y, box.W, box.H, class))
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="node-text">%s</text>`,
			box.X+box.W/2, box.Y+box.H/2, escapeXML(v.Display)))
		buf.WriteString("\n")
	}
	for _, child := range v.Children {
		drawNodes(buf, child, s)
	}
}

// escapeXML escapes special XML characters in text
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
