package frames

import (
	"strings"

	"github.com/matzehuels/relayout/pkg/graph"
)

// Text draws res on a cols by rows character grid. Frames are scaled from
// container pixels to cells and drawn as boxes with their ID in the top-left
// corner when it fits.
func Text(res graph.Result, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	sx := float64(cols) / float64(max(res.Width, 1))
	sy := float64(rows) / float64(max(res.Height, 1))
	cell := func(v int, scale float64, limit int) int {
		return min(max(int(float64(v)*scale), 0), limit-1)
	}

	for _, b := range flatten(res.Frames, "", 0, 0, 0, nil) {
		if b.w <= 0 || b.h <= 0 {
			continue
		}
		x0, x1 := cell(b.x, sx, cols), cell(b.x+b.w, sx, cols+1)-1
		y0, y1 := cell(b.y, sy, rows), cell(b.y+b.h, sy, rows+1)-1
		x1, y1 = min(max(x1, x0), cols-1), min(max(y1, y0), rows-1)
		drawBox(grid, x0, y0, x1, y1, b.invisible)

		if avail := x1 - x0 - 1; avail > 0 {
			row := y0
			if y1-y0 > 1 {
				row = y0 + 1
			}
			label := []rune(b.label)
			if len(label) > avail {
				label = label[:avail]
			}
			copy(grid[row][x0+1:], label)
		}
	}

	lines := make([]string, rows)
	for i, r := range grid {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	return strings.Join(lines, "\n")
}

func drawBox(grid [][]rune, x0, y0, x1, y1 int, dashed bool) {
	h, v := '-', '|'
	if dashed {
		h, v = '.', ':'
	}
	for x := x0; x <= x1; x++ {
		grid[y0][x] = h
		grid[y1][x] = h
	}
	for y := y0; y <= y1; y++ {
		grid[y][x0] = v
		grid[y][x1] = v
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		grid[p[1]][p[0]] = '+'
	}
}
