package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is the bubbletea model for a yes/no prompt.
type confirmModel struct {
	question string
	answer   bool
	decided  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.answer = true
			m.decided = true
			return m, tea.Quit
		case "n", "N", "esc", "ctrl+c":
			m.answer = false
			m.decided = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.decided {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", m.question, StyleDim.Render(answer))
	}
	return m.question + " " + StyleDim.Render("[Y/n]") + " "
}

// confirm asks a yes/no question on the terminal. Interactive terminals
// get a single-keypress prompt; piped input falls back to a line reader.
func (c *CLI) confirm(question string) bool {
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return runConfirmProgram(question)
	}
	return promptYesNo(os.Stdin, os.Stdout, question)
}

func runConfirmProgram(question string) bool {
	p := tea.NewProgram(confirmModel{question: question})
	model, err := p.Run()
	if err != nil {
		return promptYesNo(os.Stdin, os.Stdout, question)
	}
	m, ok := model.(confirmModel)
	return ok && m.decided && m.answer
}

// promptYesNo reads answers line by line until one is recognized. An
// empty line means yes, matching the [Y/n] convention.
func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, question+" [Y/n] ")
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
