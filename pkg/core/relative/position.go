package relative

import (
	"github.com/matzehuels/relayout/pkg/core/depgraph"
	"github.com/matzehuels/relayout/pkg/core/measure"
	"github.com/matzehuels/relayout/pkg/core/rules"
)

func visible(it depgraph.Item) bool { return it.(*Child).Visibility != Gone }

// related returns the sibling that c's verb rule points at, skipping gone
// siblings through their own rule of the same verb.
func (l *Layout) related(c *Child, v rules.Verb) *Child {
	target := c.resolved[v]
	if target <= 0 {
		return nil
	}
	it, ok := l.graph.Related(target, v, visible)
	if !ok {
		return nil
	}
	return it.(*Child)
}

// applyHorizontalRules pins c's left and right edges from its horizontal
// rules. Edges left unpinned are measure.Unset. An edge pinned to the parent
// while the container width is still unknown is recorded in c.pinnedFar and
// placed once the width is final.
func (l *Layout) applyHorizontalRules(c *Child, myWidth int) {
	rs := c.resolved
	m := c.Params.Margins
	fallback := c.Params.AlignWithParentIfMissing
	parentLeft := l.padding.Left + m.Left
	parentRight := myWidth - l.padding.Right - m.Right

	c.left, c.right = measure.Unset, measure.Unset
	var toParentLeft, toParentRight bool

	pinRight := func() {
		toParentRight = true
		if myWidth >= 0 {
			c.right = parentRight
		}
	}
	pinLeft := func() {
		toParentLeft = true
		if !l.placeholder {
			c.left = parentLeft
		}
	}

	if a := l.related(c, rules.LeftOf); a != nil {
		c.right = a.left - (a.Params.Margins.Left + m.Right)
		toParentRight = false
	} else if fallback && rs[rules.LeftOf] != 0 {
		pinRight()
	}

	if a := l.related(c, rules.RightOf); a != nil {
		c.left = a.right + (a.Params.Margins.Right + m.Left)
		toParentLeft = false
	} else if fallback && rs[rules.RightOf] != 0 {
		pinLeft()
	}

	if a := l.related(c, rules.AlignLeft); a != nil {
		c.left = a.left + m.Left
		toParentLeft = false
	} else if fallback && rs[rules.AlignLeft] != 0 {
		pinLeft()
	}

	if a := l.related(c, rules.AlignRight); a != nil {
		c.right = a.right - m.Right
		toParentRight = false
	} else if fallback && rs[rules.AlignRight] != 0 {
		pinRight()
	}

	if rs[rules.AlignParentLeft] != 0 {
		pinLeft()
	}
	if rs[rules.AlignParentRight] != 0 {
		pinRight()
	}

	if l.dir == rules.RTL {
		c.pinnedFar = toParentLeft
	} else {
		c.pinnedFar = toParentRight
	}
}

// positionHorizontal completes c's horizontal edges from its measured width.
// It reports whether c needs the wrap-content fixup once the container width
// is known.
func (l *Layout) positionHorizontal(c *Child, myWidth int, wrap bool) bool {
	w := c.measured.Width
	switch {
	case c.left == measure.Unset && c.right != measure.Unset:
		c.left = c.right - w
	case c.left != measure.Unset && c.right == measure.Unset:
		c.right = c.left + w
	case c.left == measure.Unset && c.right == measure.Unset:
		rs := c.resolved
		if rs[rules.CenterInParent] != 0 || rs[rules.CenterHorizontal] != 0 {
			if !wrap {
				l.centerHorizontal(c, 0, myWidth)
			} else {
				l.horizontalAtEdge(c, myWidth)
			}
			return true
		}
		l.horizontalAtEdge(c, myWidth)
	}
	return c.pinnedFar
}

func (l *Layout) horizontalAtEdge(c *Child, myWidth int) {
	m := c.Params.Margins
	if l.dir == rules.RTL {
		c.right = myWidth - l.padding.Right - m.Right
		c.left = c.right - c.measured.Width
		return
	}
	c.left = l.padding.Left + m.Left
	c.right = c.left + c.measured.Width
}

func (l *Layout) centerHorizontal(c *Child, origin, width int) {
	w := c.measured.Width
	c.left = origin + (width-w)/2
	c.right = c.left + w
}

func (l *Layout) centerVertical(c *Child, height int) {
	h := c.measured.Height
	c.top = (height - h) / 2
	c.bottom = c.top + h
}

// applyVerticalRules pins c's top and bottom edges. A baseline rule wins
// over every other vertical rule.
func (l *Layout) applyVerticalRules(c *Child, myHeight, myBaseline int) {
	rs := c.resolved
	m := c.Params.Margins
	fallback := c.Params.AlignWithParentIfMissing
	parentTop := l.padding.Top + m.Top
	parentBottom := myHeight - l.padding.Bottom - m.Bottom

	if offset := l.relatedBaseline(c); offset != -1 {
		if myBaseline != -1 {
			offset -= myBaseline
		}
		c.top = offset
		c.bottom = measure.Unset
		c.pinnedBottom = false
		return
	}

	c.top, c.bottom = measure.Unset, measure.Unset
	c.pinnedBottom = false

	pinBottom := func() {
		c.pinnedBottom = true
		if myHeight >= 0 {
			c.bottom = parentBottom
		}
	}

	if a := l.related(c, rules.Above); a != nil {
		c.bottom = a.top - (a.Params.Margins.Top + m.Bottom)
	} else if fallback && rs[rules.Above] != 0 {
		pinBottom()
	}

	if a := l.related(c, rules.Below); a != nil {
		c.top = a.bottom + (a.Params.Margins.Bottom + m.Top)
	} else if fallback && rs[rules.Below] != 0 {
		c.top = parentTop
	}

	if a := l.related(c, rules.AlignTop); a != nil {
		c.top = a.top + m.Top
	} else if fallback && rs[rules.AlignTop] != 0 {
		c.top = parentTop
	}

	if a := l.related(c, rules.AlignBottom); a != nil {
		c.bottom = a.bottom - m.Bottom
		c.pinnedBottom = false
	} else if fallback && rs[rules.AlignBottom] != 0 {
		pinBottom()
	}

	if rs[rules.AlignParentTop] != 0 {
		c.top = parentTop
	}
	if rs[rules.AlignParentBottom] != 0 {
		pinBottom()
	}
}

// relatedBaseline returns the container offset of the baseline of c's
// baseline anchor, or -1.
func (l *Layout) relatedBaseline(c *Child) int {
	a := l.related(c, rules.AlignBaseline)
	if a == nil {
		return -1
	}
	b := baselineOf(a)
	if b == -1 {
		return -1
	}
	return a.top + b
}

func (l *Layout) positionVertical(c *Child, myHeight int, wrap bool) bool {
	h := c.measured.Height
	m := c.Params.Margins
	switch {
	case c.top == measure.Unset && c.bottom != measure.Unset:
		c.top = c.bottom - h
	case c.top != measure.Unset && c.bottom == measure.Unset:
		c.bottom = c.top + h
	case c.top == measure.Unset && c.bottom == measure.Unset:
		rs := c.resolved
		if rs[rules.CenterInParent] != 0 || rs[rules.CenterVertical] != 0 {
			if !wrap {
				l.centerVertical(c, myHeight)
			} else {
				c.top = l.padding.Top + m.Top
				c.bottom = c.top + h
			}
			return true
		}
		c.top = l.padding.Top + m.Top
		c.bottom = c.top + h
	}
	return c.pinnedBottom
}

// adjust finalises a wrap-content size, moves children whose position
// depended on it, applies gravity and mirrors right-to-left placements
// back into container coordinates.
func (l *Layout) adjust(p *pass, widthSpec, heightSpec measure.Spec) {
	l.state = StateAdjustment

	if p.wrapWidth {
		if p.rtl {
			p.width += l.padding.Left
		} else {
			p.width += l.padding.Right
		}
		p.width = max(p.width, l.minWidth)
		p.width, _ = measure.Resolve(p.width, widthSpec)

		if p.offsetH {
			origin := 0
			if p.rtl {
				origin = p.myWidth - p.width
			}
			for _, c := range l.children {
				if c.Visibility == Gone {
					continue
				}
				rs := c.resolved
				m := c.Params.Margins
				switch {
				case rs[rules.CenterInParent] != 0 || rs[rules.CenterHorizontal] != 0:
					l.centerHorizontal(c, origin, p.width)
				case c.pinnedFar && !p.rtl:
					c.right = p.width - l.padding.Right - m.Right
					c.left = c.right - c.measured.Width
				case c.pinnedFar && p.rtl:
					c.left = origin + l.padding.Left + m.Left
					c.right = c.left + c.measured.Width
				}
			}
		}
	}

	if p.wrapHeight {
		p.height += l.padding.Bottom
		p.height = max(p.height, l.minHeight)
		p.height, _ = measure.Resolve(p.height, heightSpec)

		if p.offsetV {
			for _, c := range l.children {
				if c.Visibility == Gone {
					continue
				}
				rs := c.resolved
				switch {
				case rs[rules.CenterInParent] != 0 || rs[rules.CenterVertical] != 0:
					l.centerVertical(c, p.height)
				case c.pinnedBottom:
					c.bottom = p.height - l.padding.Bottom - c.Params.Margins.Bottom
					c.top = c.bottom - c.measured.Height
				}
			}
		}
	}

	if (p.hGravity || p.vGravity) && p.counted {
		origin := 0
		if p.rtl {
			origin = p.myWidth - p.width
		}
		self := Rect{
			Left:   origin + l.padding.Left,
			Top:    l.padding.Top,
			Right:  origin + p.width - l.padding.Right,
			Bottom: p.height - l.padding.Bottom,
		}
		content := ApplyGravity(l.gravity, p.right-p.left, p.bottom-p.top, self, l.dir)
		dx, dy := content.Left-p.left, content.Top-p.top
		if dx != 0 || dy != 0 {
			for _, c := range l.children {
				if c.Visibility == Gone || c == p.ignore {
					continue
				}
				if p.hGravity {
					c.left += dx
					c.right += dx
				}
				if p.vGravity {
					c.top += dy
					c.bottom += dy
				}
			}
		}
	}

	if p.rtl {
		offset := p.myWidth - p.width
		for _, c := range l.children {
			if c.Visibility == Gone {
				continue
			}
			c.left -= offset
			c.right -= offset
		}
	}
}
