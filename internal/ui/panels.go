package ui

// Panel identifies which panel has focus.
type Panel int

const (
	PanelList   Panel = iota // pull request list
	PanelDetail              // selected PR detail
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNavigation AppMode = iota
	ModeInsert
	ModeOverlay
	ModeCommand
)

// Layout constants
const (
	minListWidth   = 26
	minDetailWidth = 46
	minTotalWidth  = 72

	listRatio = 0.34

	statusBarHeight = 1
)

// PanelSizes holds calculated panel dimensions.
type PanelSizes struct {
	ListWidth   int
	DetailWidth int
	PanelHeight int
	TooSmall    bool
}

// CalculatePanelSizes determines panel widths from the terminal dimensions
// and which panels are visible.
func CalculatePanelSizes(termWidth, termHeight int, visible [2]bool) PanelSizes {
	if termWidth < minTotalWidth {
		return PanelSizes{TooSmall: true}
	}

	panelHeight := termHeight - statusBarHeight
	if panelHeight < 5 {
		return PanelSizes{TooSmall: true}
	}

	if !visible[PanelList] && !visible[PanelDetail] {
		return PanelSizes{TooSmall: true}
	}

	if visible[PanelList] != visible[PanelDetail] {
		sizes := PanelSizes{PanelHeight: panelHeight}
		if visible[PanelList] {
			sizes.ListWidth = termWidth
		} else {
			sizes.DetailWidth = termWidth
		}
		return sizes
	}

	listW := max(minListWidth, int(float64(termWidth)*listRatio))
	detailW := termWidth - listW
	if detailW < minDetailWidth {
		detailW = minDetailWidth
		listW = termWidth - detailW
	}

	return PanelSizes{
		ListWidth:   listW,
		DetailWidth: detailW,
		PanelHeight: panelHeight,
	}
}

// visibleCount returns how many panels are visible.
func visibleCount(visible [2]bool) int {
	n := 0
	for _, v := range visible {
		if v {
			n++
		}
	}
	return n
}

// otherPanel returns the panel that is not p.
func otherPanel(p Panel) Panel {
	if p == PanelList {
		return PanelDetail
	}
	return PanelList
}

// nextVisiblePanel returns the other panel when it is visible, otherwise
// the current one.
func nextVisiblePanel(p Panel, visible [2]bool) Panel {
	if other := otherPanel(p); visible[other] {
		return other
	}
	return p
}

func (p Panel) String() string {
	switch p {
	case PanelList:
		return "Pull Requests"
	case PanelDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
