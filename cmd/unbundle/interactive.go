package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/unbundle/bundle"
	"github.com/wippyai/unbundle/js"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type moduleView struct {
	name string
	src  string
	ids  []string
}

type modelState int

const (
	stateSelectModule modelState = iota
	statePreview
)

type interactiveModel struct {
	err       error
	filename  string
	outDir    string
	status    string
	warnings  []string
	modules   []moduleView
	viewport  viewport.Model
	filter    textinput.Model
	filtering bool
	selected  int
	width     int
	height    int
	ready     bool
	state     modelState
	opts      js.Options
}

func newInteractiveModel(filename string, cfg *config) *interactiveModel {
	out := cfg.Out
	if out == "" {
		out = "."
	}
	filter := textinput.New()
	filter.Placeholder = "module name"
	filter.Prompt = "/ "
	filter.Width = 30
	return &interactiveModel{
		filename: filename,
		outDir:   out,
		opts:     cfg.options(),
		filter:   filter,
		state:    stateSelectModule,
	}
}

// visible returns the modules matching the current filter.
func (m *interactiveModel) visible() []moduleView {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.modules
	}
	var out []moduleView
	for _, mod := range m.modules {
		if strings.Contains(strings.ToLower(mod.name), needle) {
			out = append(out, mod)
		}
	}
	return out
}

type loadedMsg struct {
	err      error
	modules  []moduleView
	warnings []string
}

type writtenMsg struct {
	err   error
	paths []string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadBundle
}

// loadBundle runs the pipeline up to extraction and pre-renders every
// module, so selection and preview never re-print.
func (m *interactiveModel) loadBundle() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	diags := &bundle.Diagnostics{}
	prog, err := js.Parse(string(data), m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	js.ResolveScopes(prog)

	call, err := bundle.Locate(prog, m.filename, diags)
	if err != nil {
		return loadedMsg{err: err}
	}
	table, err := bundle.ReadTable(call, m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	reg := bundle.BuildRegistry(table, diags)
	ext, err := bundle.Extract(table, reg, diags)
	if err != nil {
		return loadedMsg{err: err}
	}

	opts := m.opts
	opts.Rename = ext.Rename

	var modules []moduleView
	for _, mod := range ext.Modules {
		bundle.Normalize(mod)
		mv := moduleView{
			name: mod.Name,
			src:  js.Print(&js.Program{Body: mod.Body}, opts),
		}
		for _, id := range mod.IDs {
			mv.ids = append(mv.ids, string(id))
		}
		modules = append(modules, mv)
	}

	var warnings []string
	for _, w := range diags.Warnings() {
		warnings = append(warnings, w.Error())
	}
	return loadedMsg{modules: modules, warnings: warnings}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				if n := len(m.visible()); m.selected >= n && n > 0 {
					m.selected = n - 1
				} else if n == 0 {
					m.selected = 0
				}
				return m, cmd
			}
			return m, nil
		}

		vis := m.visible()
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateSelectModule {
				m.filtering = true
				return m, m.filter.Focus()
			}

		case "up", "k":
			if m.state == stateSelectModule && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectModule && m.selected < len(vis)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectModule && m.selected < len(vis) {
				m.viewport.SetContent(vis[m.selected].src)
				m.viewport.GotoTop()
				m.state = statePreview
			}

		case "w":
			if m.selected < len(vis) {
				return m, m.writeModules(vis[m.selected : m.selected+1])
			}

		case "a":
			if len(m.modules) > 0 {
				return m, m.writeModules(m.modules)
			}

		case "esc":
			switch {
			case m.state == statePreview:
				m.state = stateSelectModule
			case m.filter.Value() != "":
				m.filter.SetValue("")
				m.selected = 0
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.modules = msg.modules
		m.warnings = msg.warnings

	case writtenMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = okStyle.Render(fmt.Sprintf("wrote %s", strings.Join(msg.paths, ", ")))
		}
	}

	if m.state == statePreview {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) writeModules(mods []moduleView) tea.Cmd {
	outDir := m.outDir
	return func() tea.Msg {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return writtenMsg{err: err}
		}
		var paths []string
		for _, mod := range mods {
			out := filepath.Join(outDir, mod.name+".js")
			if err := os.WriteFile(out, []byte(mod.src), 0o644); err != nil {
				return writtenMsg{err: err}
			}
			paths = append(paths, out)
		}
		return writtenMsg{paths: paths}
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.modules) == 0 {
		return "Loading bundle..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Unbundle"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectModule:
		vis := m.visible()
		b.WriteString(fmt.Sprintf("%d module(s) extracted:\n\n", len(m.modules)))
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, mod := range vis {
			line := m.formatModule(mod)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(vis) == 0 {
			b.WriteString(helpStyle.Render("  no modules match"))
			b.WriteString("\n")
		}
		for _, w := range m.warnings {
			b.WriteString("\n")
			b.WriteString(warnStyle.Render("! " + w))
		}
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(m.status)
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter preview • w write • a write all • q quit"))

	case statePreview:
		vis := m.visible()
		if m.selected >= len(vis) {
			break
		}
		mod := vis[m.selected]
		b.WriteString(moduleStyle.Render(mod.name+".js"))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(m.status)
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ scroll • w write • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatModule(mod moduleView) string {
	name := moduleStyle.Render(mod.name + ".js")
	ids := idStyle.Render("[" + strings.Join(mod.ids, ", ") + "]")
	return fmt.Sprintf("%s %s %d bytes", name, ids, len(mod.src))
}

func runInteractive(filename string, cfg *config) error {
	p := tea.NewProgram(newInteractiveModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
