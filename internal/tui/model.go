// Package tui provides the Bubble Tea menu for interactive decryption.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/decaesar/internal/freq"
	"github.com/verte-zerg/decaesar/internal/model"
)

// Decrypter analyzes text on behalf of the menu. *decrypt.Service satisfies it.
type Decrypter interface {
	Decrypt(ctx context.Context, source, text string) (freq.Result, error)
}

type screen int

const (
	screenMenu screen = iota
	screenInput
	screenResult
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea menu UI.
type Model struct {
	decrypter Decrypter
	textFile  string

	width  int
	height int

	screen   screen
	cursor   int
	input    textinput.Model
	viewport viewport.Model

	result *freq.Result
	source string
	errMsg string
}

// NewModel constructs the menu model. textFile is read by the file command.
func NewModel(d Decrypter, textFile string) *Model {
	input := textinput.New()
	input.Prompt = "Text: "
	input.Placeholder = "ciphertext"
	input.CharLimit = 0
	return &Model{
		decrypter: d,
		textFile:  textFile,
		input:     input,
		viewport:  viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, msg.Width-lipgloss.Width(m.input.Prompt)-1)
		m.layoutViewport()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenInput:
			return m.updateInput(msg)
		case screenResult:
			return m.updateResult(msg)
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor + len(menuOrder) - 1) % len(menuOrder)
		return m, nil
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(menuOrder)
		return m, nil
	case "enter":
		return m.dispatch(menuOrder[m.cursor])
	case "q", "esc":
		return m.dispatch(CommandExit)
	}
	if msg.Type != tea.KeyRunes {
		return m, nil
	}
	cmd, err := ParseCommand(string(msg.Runes))
	if err != nil {
		m.errMsg = fmt.Sprintf("%s, try again", err)
		return m, nil
	}
	return m.dispatch(cmd)
}

func (m *Model) dispatch(cmd Command) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch cmd {
	case CommandKeyboard:
		m.screen = screenInput
		m.input.Reset()
		return m, m.input.Focus()
	case CommandFile:
		m.decryptFile()
		return m, nil
	case CommandExit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = screenMenu
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		m.run(model.SourceKeyboard, m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.screen = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) decryptFile() {
	if m.textFile == "" {
		m.errMsg = "no text file configured"
		return
	}
	data, err := os.ReadFile(m.textFile)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to read %s: %v", m.textFile, err)
		return
	}
	m.run(model.SourceFile+m.textFile, string(data))
}

func (m *Model) run(source, text string) {
	res, err := m.decrypter.Decrypt(context.Background(), source, text)
	if err != nil {
		m.errMsg = err.Error()
		m.screen = screenMenu
		return
	}
	m.result = &res
	m.source = source
	m.screen = screenResult
	m.layoutViewport()
	m.viewport.GotoTop()
}

func (m *Model) layoutViewport() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height - 3
	if height < 1 {
		height = 10
	}
	m.viewport.Width = width
	m.viewport.Height = height
	if m.result != nil {
		m.viewport.SetContent(textStyle.Render(wrapText(m.result.Text, width)))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenInput:
		return strings.Join([]string{
			titleStyle.Render(CommandKeyboard.String()),
			m.input.View(),
			footerStyle.Render("enter: decipher  esc: back"),
		}, "\n")
	case screenResult:
		return strings.Join([]string{
			titleStyle.Render(m.resultHeader()),
			m.viewport.View(),
			footerStyle.Render("up/down: scroll  enter/esc: menu  ctrl+c: quit"),
		}, "\n")
	default:
		return m.renderMenu()
	}
}

func (m *Model) renderMenu() string {
	lines := []string{titleStyle.Render("Caesar cipher frequency analysis"), ""}
	for i, cmd := range menuOrder {
		label := fmt.Sprintf("%d. %s", int(cmd), cmd)
		if cmd == CommandFile && m.textFile != "" {
			label += fmt.Sprintf(" (%s)", m.textFile)
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+label))
		} else {
			lines = append(lines, itemStyle.Render("  "+label))
		}
	}
	lines = append(lines, "")
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, footerStyle.Render("1/2/0 or up/down+enter  q: quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) resultHeader() string {
	if m.result == nil {
		return ""
	}
	match := "best available"
	if m.result.Perfect {
		match = "perfect"
	}
	return fmt.Sprintf("%s  shift %d  chi-squared %.4f (%s)", m.source, m.result.Shift, m.result.ChiSquared, match)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
