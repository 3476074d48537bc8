package logic

// Navigator tracks the cursor and the scrolled viewport over a flat list
type Navigator struct {
	cursor         int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator(totalItems, viewportHeight int) *Navigator {
	n := &Navigator{
		totalItems:     totalItems,
		viewportHeight: viewportHeight,
	}
	n.ensureCursorVisible()
	return n
}

// Cursor returns the index under the cursor
func (n *Navigator) Cursor() int {
	return n.cursor
}

// ViewportOffset returns the first visible index
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of rows available for items and indicators
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// TotalItems returns the number of items navigated over
func (n *Navigator) TotalItems() int {
	return n.totalItems
}

// SetTotalItems updates the item count, clamping the cursor
func (n *Navigator) SetTotalItems(total int) {
	n.totalItems = total
	n.ensureCursorVisible()
}

// SetViewportHeight updates the viewport size, e.g. after a terminal resize
func (n *Navigator) SetViewportHeight(height int) {
	n.viewportHeight = height
	n.ensureCursorVisible()
}

// SetCursor moves the cursor and scrolls it into view
func (n *Navigator) SetCursor(index int) {
	n.cursor = index
	n.ensureCursorVisible()
}

// Move handles a navigation direction: up, down, pageup, pagedown, home, end
func (n *Navigator) Move(direction string) {
	switch direction {
	case "up":
		n.SetCursor(n.cursor - 1)
	case "down":
		n.SetCursor(n.cursor + 1)
	case "pageup":
		n.SetCursor(n.cursor - n.pageSize())
	case "pagedown":
		n.SetCursor(n.cursor + n.pageSize())
	case "home":
		n.SetCursor(0)
	case "end":
		n.SetCursor(n.totalItems - 1)
	}
}

// VisibleRange returns the visible item range [start, end) and whether
// scroll indicators are needed above and below it
func (n *Navigator) VisibleRange() (start, end int, above, below bool) {
	start = n.viewportOffset
	above = start > 0
	height := n.effectiveHeight(above, start)
	end = start + height
	if end >= n.totalItems {
		end = n.totalItems
	} else {
		below = true
	}
	return start, end, above, below
}

func (n *Navigator) pageSize() int {
	if n.viewportHeight <= 2 {
		return 1
	}
	return n.viewportHeight - 2
}

// effectiveHeight is the number of item rows left once indicators are drawn
func (n *Navigator) effectiveHeight(above bool, offset int) int {
	height := n.viewportHeight
	if above {
		height--
	}
	if offset+height < n.totalItems {
		height-- // bottom indicator
	}
	// Ensure we have at least 1 line for content
	if height < 1 {
		height = 1
	}
	return height
}

// ensureCursorVisible clamps the cursor and adjusts the viewport to keep it visible
func (n *Navigator) ensureCursorVisible() {
	if n.cursor >= n.totalItems {
		n.cursor = n.totalItems - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}

	if n.viewportHeight <= 0 || n.totalItems == 0 {
		n.viewportOffset = 0
		return
	}

	// If cursor is above viewport, scroll up
	if n.cursor < n.viewportOffset {
		n.viewportOffset = n.cursor
	}

	// If cursor is below the effective viewport, scroll down until it fits
	for n.cursor >= n.viewportOffset+n.effectiveHeight(n.viewportOffset > 0, n.viewportOffset) {
		n.viewportOffset++
	}

	// Don't leave empty rows at the bottom when scrolled
	for n.viewportOffset > 0 {
		prev := n.viewportOffset - 1
		if n.cursor < prev+n.effectiveHeight(prev > 0, prev) && prev+n.effectiveHeight(prev > 0, prev) >= n.totalItems {
			n.viewportOffset = prev
			continue
		}
		break
	}
}
