package frames

import "github.com/matzehuels/relayout/pkg/graph"

// box is a frame in root container coordinates.
type box struct {
	path      string
	label     string
	x, y      int
	w, h      int
	depth     int
	invisible bool
}

func flatten(frames []graph.Frame, prefix string, dx, dy, depth int, out []box) []box {
	for _, f := range frames {
		if f.Visibility == "gone" {
			continue
		}
		path := f.ID
		if prefix != "" {
			path = prefix + "." + f.ID
		}
		out = append(out, box{
			path:      path,
			label:     f.ID,
			x:         dx + f.Left,
			y:         dy + f.Top,
			w:         f.Width(),
			h:         f.Height(),
			depth:     depth,
			invisible: f.Visibility == "invisible",
		})
		out = flatten(f.Children, path, dx+f.Left, dy+f.Top, depth+1, out)
	}
	return out
}
