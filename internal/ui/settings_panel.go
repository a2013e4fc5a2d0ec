package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/config"
)

// SettingsClosedMsg is emitted when the settings overlay is dismissed.
type SettingsClosedMsg struct{}

// ConfigChangedMsg is emitted alongside SettingsClosedMsg when any setting
// was modified while the overlay was open.
type ConfigChangedMsg struct{}

// settingKind describes the type of a setting entry.
type settingKind int

const (
	settingNumber settingKind = iota
	settingChoice
)

// settingItem describes a single configurable setting.
type settingItem struct {
	label   string
	desc    string
	kind    settingKind
	min     int      // for settingNumber
	max     int      // for settingNumber
	step    int      // for settingNumber
	unitSec bool     // display seconds (value stored as ms)
	options []string // for settingChoice
}

var settingsSchema = []settingItem{
	{label: "Poll Interval", desc: "Seconds between background refreshes", kind: settingNumber, min: 10, max: 600, step: 10, unitSec: true},
	{label: "Default Tab", desc: "Pull request tab shown at startup", kind: settingChoice, options: []string{"review", "all"}},
	{label: "Log Level", desc: "Log file verbosity (applies on restart)", kind: settingChoice, options: []string{"debug", "info", "warn", "error"}},
}

// SettingsModel manages the settings overlay.
type SettingsModel struct {
	cfg     *config.Config
	width   int
	height  int
	visible bool
	cursor  int
	dirty   bool // whether settings have been modified
}

// NewSettingsModel creates a settings model.
func NewSettingsModel() SettingsModel {
	return SettingsModel{}
}

// Show makes the settings overlay visible with the given config.
func (m *SettingsModel) Show(cfg *config.Config) {
	m.visible = true
	m.cursor = 0
	m.dirty = false
	// Work on a copy so we can save atomically on close
	c := *cfg
	m.cfg = &c
}

// Hide dismisses the settings overlay.
func (m *SettingsModel) Hide() {
	m.visible = false
}

// IsVisible returns whether the settings overlay is currently shown.
func (m SettingsModel) IsVisible() bool {
	return m.visible
}

// SetSize updates the overlay dimensions.
func (m *SettingsModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
}

// Config returns the current (possibly modified) config.
func (m SettingsModel) Config() *config.Config {
	return m.cfg
}

// IsDirty returns whether settings have been modified.
func (m SettingsModel) IsDirty() bool {
	return m.dirty
}

// Update handles key events in the settings overlay.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case kmsg.String() == "esc" || kmsg.String() == "q":
		return m.close()

	case key.Matches(kmsg, GlobalKeys.Help):
		return m.close()

	case kmsg.String() == "j" || kmsg.String() == "down":
		if m.cursor < len(settingsSchema)-1 {
			m.cursor++
		}
		return m, nil

	case kmsg.String() == "k" || kmsg.String() == "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case kmsg.String() == "enter" || kmsg.String() == " ":
		m.advance(1)
		return m, nil

	case kmsg.String() == "l" || kmsg.String() == "right" || kmsg.String() == "+":
		m.advance(1)
		return m, nil

	case kmsg.String() == "h" || kmsg.String() == "left" || kmsg.String() == "-":
		m.advance(-1)
		return m, nil
	}

	return m, nil
}

// close hides the overlay and emits the closed message, plus a config-changed
// message when anything was modified.
func (m SettingsModel) close() (SettingsModel, tea.Cmd) {
	m.Hide()
	var cmds []tea.Cmd
	cmds = append(cmds, func() tea.Msg { return SettingsClosedMsg{} })
	if m.dirty {
		cmds = append(cmds, func() tea.Msg { return ConfigChangedMsg{} })
	}
	return m, tea.Batch(cmds...)
}

// advance moves the focused setting by the given direction: numbers step
// within their bounds, choices cycle through their options.
func (m *SettingsModel) advance(dir int) {
	item := settingsSchema[m.cursor]
	switch item.kind {
	case settingNumber:
		m.adjustNumber(item, dir)
	case settingChoice:
		m.cycleChoice(item, dir)
	}
}

// adjustNumber changes a number setting by the given direction (-1 or +1).
func (m *SettingsModel) adjustNumber(item settingItem, dir int) {
	val := m.getNumber(m.cursor)
	step := item.step
	minVal := item.min
	maxVal := item.max
	if item.unitSec {
		step *= 1000
		minVal *= 1000
		maxVal *= 1000
	}
	val += dir * step
	if val < minVal {
		val = minVal
	}
	if val > maxVal {
		val = maxVal
	}
	m.setNumber(m.cursor, val)
	m.dirty = true
}

// cycleChoice moves a choice setting to the next or previous option, wrapping.
func (m *SettingsModel) cycleChoice(item settingItem, dir int) {
	if len(item.options) == 0 {
		return
	}
	current := m.getChoice(m.cursor)
	idx := 0
	for i, opt := range item.options {
		if opt == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(item.options)) % len(item.options)
	m.setChoice(m.cursor, item.options[idx])
	m.dirty = true
}

// getNumber returns the numeric value for a number setting by index.
func (m SettingsModel) getNumber(idx int) int {
	switch settingsSchema[idx].label {
	case "Poll Interval":
		return m.cfg.PollInterval
	}
	return 0
}

// setNumber sets the numeric value for a number setting by index.
func (m *SettingsModel) setNumber(idx int, val int) {
	switch settingsSchema[idx].label {
	case "Poll Interval":
		m.cfg.PollInterval = val
	}
}

// getChoice returns the string value for a choice setting by index.
func (m SettingsModel) getChoice(idx int) string {
	switch settingsSchema[idx].label {
	case "Default Tab":
		return m.cfg.DefaultTab
	case "Log Level":
		return m.cfg.LogLevel
	}
	return ""
}

// setChoice sets the string value for a choice setting by index.
func (m *SettingsModel) setChoice(idx int, val string) {
	switch settingsSchema[idx].label {
	case "Default Tab":
		m.cfg.DefaultTab = val
	case "Log Level":
		m.cfg.LogLevel = val
	}
}

// View renders the settings overlay.
func (m SettingsModel) View() string {
	if !m.visible {
		return ""
	}

	overlayW, overlayH := m.overlayDimensions()
	innerW := overlayW - 6 // border + padding
	if innerW < 1 {
		innerW = 1
	}

	// Title
	title := settingsTitleStyle.Render(" Settings ")
	titleLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, title)

	// Footer
	footer := settingsFooterStyle.Render(" j/k navigate · h/l adjust · Esc close ")
	footerLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, footer)

	// Setting rows
	var rows []string
	for i, item := range settingsSchema {
		rows = append(rows, m.renderSettingRow(i, item))
	}

	// Dirty indicator
	if m.dirty {
		rows = append(rows, "")
		rows = append(rows, settingsDirtyStyle.Render("  Changes will be saved on close"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	box := lipgloss.JoinVertical(lipgloss.Left, titleLine, "", content, "", footerLine)

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(overlayW - 2).
		Height(overlayH - 2)

	rendered := overlayStyle.Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// renderSettingRow renders a single setting row.
func (m SettingsModel) renderSettingRow(idx int, item settingItem) string {
	isFocused := idx == m.cursor

	marker := "  "
	if isFocused {
		marker = settingsMarkerStyle.Render("▸ ")
	}

	labelStyle := settingsLabelStyle
	if isFocused {
		labelStyle = settingsLabelFocusedStyle
	}

	label := labelStyle.Render(padRight(item.label, 16))

	var display string
	switch item.kind {
	case settingNumber:
		raw := m.getNumber(idx)
		unit := "ms"
		if item.unitSec {
			raw /= 1000
			unit = "s"
		}
		display = fmt.Sprintf("%d%s", raw, unit)
	case settingChoice:
		display = m.getChoice(idx)
	}

	var value string
	if isFocused {
		value = settingsValueFocusedStyle.Render(fmt.Sprintf("◂ %s ▸", padRight(display, 6)))
	} else {
		value = settingsValueStyle.Render(fmt.Sprintf("  %s  ", padRight(display, 6)))
	}

	desc := settingsDescStyle.Render(item.desc)

	return marker + label + value + "  " + desc
}

// overlayDimensions returns the outer dimensions of the settings overlay box.
func (m SettingsModel) overlayDimensions() (width, height int) {
	width = int(float64(m.width) * 0.55)
	height = len(settingsSchema)*2 + 10 // rows + chrome
	if width < 60 {
		width = min(60, m.width)
	}
	if height < 12 {
		height = 12
	}
	if height > m.height-2 {
		height = m.height - 2
	}
	return width, height
}

// Settings overlay styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	settingsFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)

	settingsMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	settingsLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	settingsLabelFocusedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("42")).
					Bold(true)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	settingsValueFocusedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("214")).
					Bold(true)

	settingsDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)

	settingsDirtyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Italic(true)
)
