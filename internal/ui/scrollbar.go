package ui

import "strings"

// renderScrollbar builds a 1-char-wide vertical scrollbar column for the
// detail viewport. Each row maps proportionally to the total content and the
// thumb shows the visible portion. Returns "" when the content fits.
func (m DetailModel) renderScrollbar() string {
	height := m.viewport.Height
	totalLines := m.viewport.TotalLineCount()
	if height <= 0 || totalLines <= height {
		return ""
	}

	thumbSize := max(1, height*height/totalLines)
	thumbStart := m.viewport.YOffset * height / totalLines
	if thumbStart+thumbSize > height {
		thumbStart = height - thumbSize
	}

	rows := make([]string, height)
	for i := 0; i < height; i++ {
		if i >= thumbStart && i < thumbStart+thumbSize {
			rows[i] = scrollbarThumbStyle.Render("┃")
		} else {
			rows[i] = scrollbarTrackStyle.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
