package layout

// Point is a coordinate in the rendered container's frame.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned bounding box in page coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// BottomCenter returns the anchor used for a parent's outgoing edges.
func (r Rect) BottomCenter() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H}
}

// TopCenter returns the anchor used for a child's incoming edge.
func (r Rect) TopCenter() Point {
	return Point{X: r.X + r.W/2, Y: r.Y}
}

// Edge is a connector line from a parent's bottom-center anchor to a
// child's top-center anchor, container-relative.
type Edge struct {
	From Point
	To   Point
}

// Surface abstracts the rendered geometry of a visual tree so the edge
// computation can run against synthetic boxes in tests as well as a real
// rendering surface.
//
// Bounds reports the measured label box of a node; the second result is
// false for nodes the surface has not rendered. Origin is the
// container's top-left corner in the same coordinate space as Bounds.
type Surface interface {
	Bounds(id NodeID) (Rect, bool)
	Origin() Point
}

// ComputeEdges produces one edge per (parent, direct child) pair of the
// visual tree, in child order, coordinates normalized to the container
// frame. It must run only after the surface has measurable geometry;
// calling it again on an unchanged surface yields an identical result,
// and the caller replaces any previously drawn edge set rather than
// accumulating. Pairs with an unmeasurable endpoint are skipped.
func ComputeEdges(root *VisualNode, s Surface) []Edge {
	if root == nil {
		return nil
	}
	origin := s.Origin()
	var edges []Edge
	appendEdges(root, s, origin, &edges)
	return edges
}

func appendEdges(v *VisualNode, s Surface, origin Point, edges *[]Edge) {
	parentBox, parentOK := s.Bounds(v.ID)
	for _, child := range v.Children {
		if parentOK {
			if childBox, ok := s.Bounds(child.ID); ok {
				from := parentBox.BottomCenter()
				to := childBox.TopCenter()
				*edges = append(*edges, Edge{
					From: Point{X: from.X - origin.X, Y: from.Y - origin.Y},
					To:   Point{X: to.X - origin.X, Y: to.Y - origin.Y},
				})
			}
		}
		appendEdges(child, s, origin, edges)
	}
}
