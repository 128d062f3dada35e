package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avlund/lnfeat/features"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	setStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render
)

func main() {
	if len(os.Args) > 2 {
		log.Fatal("usage: inspect [hex feature bytes]")
	}

	input := textinput.New()
	input.Placeholder = "feature bytes in hex, wire order, e.g. 02822a"
	input.Focus()

	m := model{input: input}
	if len(os.Args) == 2 {
		m.input.SetValue(os.Args[1])
		m.report = inspect(os.Args[1])
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	input  textinput.Model
	report string
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			m.report = inspect(m.input.Value())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("init feature vector inspector") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if m.report != "" {
		b.WriteString(m.report + "\n")
	}
	b.WriteString(helpStyle("enter to decode, esc to quit") + "\n")
	return b.String()
}

func inspect(hexFlags string) string {
	wireBytes, err := hex.DecodeString(strings.TrimSpace(hexFlags))
	if err != nil {
		return warnStyle.Render(fmt.Sprintf("bad hex: %v", err))
	}

	// Storage order for the per-capability registry checks, lowest bits first.
	storage := slices.Clone(wireBytes)
	slices.Reverse(storage)
	vec := features.InitFeaturesFromWireBytes(wireBytes)

	var b strings.Builder
	for _, f := range features.All {
		state := unsetStyle.Render("absent")
		if f.Supported(storage) {
			if storage[f.ByteOffset()]&f.RequiredMask() != 0 {
				state = setStyle.Render("required")
			} else {
				state = setStyle.Render("optional")
			}
		}
		fmt.Fprintf(&b, "%-32s %s\n", f.Name(), state)
	}

	switch {
	case vec.RequiresUnknownBits():
		b.WriteString("\n" + warnStyle.Render("vector requires unknown feature bits") + "\n")
	case vec.SupportsUnknownBits():
		b.WriteString("\n" + warnStyle.Render("vector carries unknown optional feature bits") + "\n")
	}

	return b.String()
}
