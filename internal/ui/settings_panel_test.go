package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dheerajverma96/ReviewCodeApp/internal/config"
)

func testSettingsConfig() *config.Config {
	return &config.Config{
		Owner:        "octocat",
		Repo:         "hello-world",
		PollInterval: 60000,
		DefaultTab:   "review",
		LogLevel:     "info",
	}
}

// closeMsgs runs a close command and unwraps the batch into its messages.
func closeMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected cmd")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, c())
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSettings_ShowCopiesConfig(t *testing.T) {
	cfg := testSettingsConfig()
	m := NewSettingsModel()
	m.Show(cfg)

	if !m.IsVisible() {
		t.Fatal("expected overlay visible")
	}

	// Bump the poll interval on the overlay's copy
	m, _ = m.Update(keyMsg("l"))

	if got := m.Config().PollInterval; got != 70000 {
		t.Errorf("copy PollInterval = %d, want 70000", got)
	}
	if cfg.PollInterval != 60000 {
		t.Errorf("original PollInterval = %d, want 60000 (untouched)", cfg.PollInterval)
	}
	if !m.IsDirty() {
		t.Error("expected dirty after adjustment")
	}
}

func TestSettings_AdjustNumberClamps(t *testing.T) {
	t.Run("lower bound", func(t *testing.T) {
		cfg := testSettingsConfig()
		cfg.PollInterval = 10000 // 10s, the minimum
		m := NewSettingsModel()
		m.Show(cfg)

		m, _ = m.Update(keyMsg("h"))
		if got := m.Config().PollInterval; got != 10000 {
			t.Errorf("PollInterval = %d, want 10000 (clamped)", got)
		}
	})

	t.Run("upper bound", func(t *testing.T) {
		cfg := testSettingsConfig()
		cfg.PollInterval = 600000 // 600s, the maximum
		m := NewSettingsModel()
		m.Show(cfg)

		m, _ = m.Update(keyMsg("l"))
		if got := m.Config().PollInterval; got != 600000 {
			t.Errorf("PollInterval = %d, want 600000 (clamped)", got)
		}
	})
}

func TestSettings_CycleChoiceWraps(t *testing.T) {
	cfg := testSettingsConfig()
	m := NewSettingsModel()
	m.Show(cfg)

	// Move to the Default Tab row
	m, _ = m.Update(keyMsg("j"))

	m, _ = m.Update(keyMsg("l"))
	if got := m.Config().DefaultTab; got != "all" {
		t.Errorf("DefaultTab = %q, want %q", got, "all")
	}

	m, _ = m.Update(keyMsg("l"))
	if got := m.Config().DefaultTab; got != "review" {
		t.Errorf("DefaultTab = %q, want %q (wrapped)", got, "review")
	}

	// Backward from the first option wraps to the last
	m, _ = m.Update(keyMsg("h"))
	if got := m.Config().DefaultTab; got != "all" {
		t.Errorf("DefaultTab = %q, want %q (wrapped backward)", got, "all")
	}
}

func TestSettings_CursorClamps(t *testing.T) {
	cfg := testSettingsConfig()
	m := NewSettingsModel()
	m.Show(cfg)

	// k at the top stays put
	m, _ = m.Update(keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	// j stops at the last row
	for i := 0; i < len(settingsSchema)+2; i++ {
		m, _ = m.Update(keyMsg("j"))
	}
	if m.cursor != len(settingsSchema)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(settingsSchema)-1)
	}
}

func TestSettings_CloseWithoutChanges(t *testing.T) {
	cfg := testSettingsConfig()
	m := NewSettingsModel()
	m.Show(cfg)

	m, cmd := m.Update(keyMsg("esc"))
	if m.IsVisible() {
		t.Error("expected overlay hidden")
	}

	msgs := closeMsgs(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(SettingsClosedMsg); !ok {
		t.Errorf("expected SettingsClosedMsg, got %T", msgs[0])
	}
}

func TestSettings_CloseAfterChanges(t *testing.T) {
	cfg := testSettingsConfig()
	m := NewSettingsModel()
	m.Show(cfg)

	m, _ = m.Update(keyMsg("l")) // modify poll interval
	m, cmd := m.Update(keyMsg("esc"))

	msgs := closeMsgs(t, cmd)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	var sawClosed, sawChanged bool
	for _, msg := range msgs {
		switch msg.(type) {
		case SettingsClosedMsg:
			sawClosed = true
		case ConfigChangedMsg:
			sawChanged = true
		}
	}
	if !sawClosed {
		t.Error("expected SettingsClosedMsg")
	}
	if !sawChanged {
		t.Error("expected ConfigChangedMsg")
	}
}
