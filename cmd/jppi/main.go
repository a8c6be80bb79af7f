// Command jppi is an interactive terminal explorer for JSONPath
// queries: the query is edited in a text field and the match list
// re-renders on every keystroke against the loaded document.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/midbel/jpp/jsonpath"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	root      jsonpath.Value
	input     textinput.Model
	result    viewport.Model
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newModel(root jsonpath.Value) model {
	ti := textinput.New()
	ti.Placeholder = "$.store.book[*].author"
	ti.Focus()

	return model{
		root:   root,
		input:  ti,
		result: viewport.New(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(m.width)
		m.result.SetWidth(m.width)
		m.result.SetHeight(m.height - 4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.evaluate()

	var vpCmd tea.Cmd
	m.result, vpCmd = m.result.Update(msg)
	return m, tea.Batch(cmd, vpCmd)
}

func (m *model) evaluate() {
	query := m.input.Value()
	if query == "" {
		m.statusMsg, m.errMsg = "", ""
		m.result.SetContent("")
		return
	}

	jp, err := jsonpath.Compile(query)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""

	nodes := jp.Query(&m.root)
	m.statusMsg = fmt.Sprintf("%d match(es)", len(nodes))

	var sb strings.Builder
	ws := jsonpath.NewWriter(&sb)
	arr := jsonpath.NewArray()
	for _, n := range nodes {
		arr.Items = append(arr.Items, *n)
	}
	ws.Write(jsonpath.FromArray(arr))
	m.result.SetContent(sb.String())
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("jppi") + "  " + m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
	} else {
		b.WriteString(countStyle.Render(m.statusMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(m.result.View())
	return b.String()
}

func main() {
	var file string
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	r := os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	root, err := jsonpath.Decode(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(root))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
