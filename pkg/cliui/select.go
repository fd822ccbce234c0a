package cliui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

// ErrSelectionAborted is returned when the user quits the selector without
// choosing an item.
var ErrSelectionAborted = errors.New("selection aborted")

var (
	selectTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	selectCursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectItemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
)

type selectKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

func (k selectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Quit}
}

func (k selectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.Enter, k.Quit}}
}

func defaultSelectKeyMap() selectKeyMap {
	return selectKeyMap{
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type selectModel struct {
	title   string
	items   []string
	cursor  int
	choice  int
	keys    selectKeyMap
	help    help.Model
	width   int
	aborted bool
}

func newSelectModel(title string, items []string) selectModel {
	return selectModel{
		title:  title,
		items:  items,
		choice: -1,
		keys:   defaultSelectKeyMap(),
		help:   help.New(),
	}
}

func (m selectModel) Init() bubbletea.Cmd {
	return nil
}

func (m selectModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Enter):
			m.choice = m.cursor
			return m, bubbletea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, bubbletea.Quit
		}
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.choice >= 0 || m.aborted {
		return ""
	}

	s := selectTitleStyle.Render(m.title) + "\n\n"
	for i, item := range m.items {
		if i == m.cursor {
			s += fmt.Sprintf("%s %s\n", selectCursorStyle.Render(">"), selectHighlightStyle.Render(item))
		} else {
			s += fmt.Sprintf("  %s\n", selectItemStyle.Render(item))
		}
	}
	s += "\n" + m.help.View(m.keys)
	return s
}

// Select runs an interactive picker over items and returns the chosen
// index. Quitting without a choice returns ErrSelectionAborted.
func Select(ctx context.Context, title string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("nothing to select from")
	}

	program := bubbletea.NewProgram(newSelectModel(title, items), bubbletea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("running selector: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.choice < 0 {
		return 0, ErrSelectionAborted
	}

	return m.choice, nil
}
