package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/utils"
)

// pickerKeyMap defines the picker key bindings.
type pickerKeyMap struct {
	Select key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy id"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// clipboardCopiedMsg reports the result of a clipboard write.
type clipboardCopiedMsg struct {
	id  string
	err error
}

// Picker is an interactive table of catalog records, newest first.
type Picker struct {
	table   table.Model
	keys    pickerKeyMap
	records []ami.Record

	selected *ami.Record
	message  string

	// writeClipboard is swapped out in tests.
	writeClipboard func(string) error
}

// NewPicker creates a picker over records, which are expected oldest first
// as returned by ami.Client.List.
func NewPicker(records []ami.Record) *Picker {
	newestFirst := make([]ami.Record, len(records))
	for i, rec := range records {
		newestFirst[len(records)-1-i] = rec
	}

	rows := make([]table.Row, 0, len(newestFirst))
	widths := make([]int, len(Columns))
	for i, title := range Columns {
		widths[i] = len(title)
	}
	for _, rec := range newestFirst {
		row := recordRow(rec)
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
		rows = append(rows, table.Row(row))
	}

	columns := make([]table.Column, len(Columns))
	for i, title := range Columns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), 15)+4),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("39")).
		Bold(true)
	t.SetStyles(styles)

	return &Picker{
		table:          t,
		keys:           defaultPickerKeyMap(),
		records:        newestFirst,
		writeClipboard: clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, p.keys.Select):
			if rec, ok := p.current(); ok {
				p.selected = &rec
				return p, tea.Quit
			}
			return p, nil
		case key.Matches(msg, p.keys.Copy):
			return p, p.copyCurrent()
		}

	case tea.WindowSizeMsg:
		// title, help and message lines
		p.table.SetHeight(max(msg.Height-6, 3))
		return p, nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			p.message = ErrorStyle.Render(fmt.Sprintf("Failed to copy: %v", msg.err))
		} else {
			p.message = SuccessStyle.Render("✓ Copied " + msg.id)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *Picker) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(fmt.Sprintf("Ubuntu AMIs (%d)", len(p.records))))
	s.WriteString("\n")

	if len(p.records) == 0 {
		s.WriteString(DimStyle.Render("No images match the query."))
	} else {
		s.WriteString(p.table.View())
		if rec, ok := p.current(); ok {
			s.WriteString("\n")
			s.WriteString(InfoStyle.Render("Published " + utils.FormatPublishDate(rec.PublishDate)))
		}
	}
	s.WriteString("\n\n")

	if p.message != "" {
		s.WriteString(p.message)
		s.WriteString("\n")
	}

	help := []string{"↑/↓ navigate"}
	for _, b := range []key.Binding{p.keys.Select, p.keys.Copy, p.keys.Quit} {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	s.WriteString(DimStyle.Render(strings.Join(help, "  •  ")))

	return s.String()
}

// Selected returns the record chosen with enter, if any.
func (p *Picker) Selected() (ami.Record, bool) {
	if p.selected == nil {
		return ami.Record{}, false
	}
	return *p.selected, true
}

// current returns the highlighted record.
func (p *Picker) current() (ami.Record, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.records) {
		return ami.Record{}, false
	}
	return p.records[i], true
}

// copyCurrent copies the highlighted image ID to the clipboard.
func (p *Picker) copyCurrent() tea.Cmd {
	rec, ok := p.current()
	if !ok {
		return nil
	}
	write := p.writeClipboard
	return func() tea.Msg {
		id, err := rec.ImageID()
		if err != nil {
			return clipboardCopiedMsg{err: err}
		}
		if err := write(id); err != nil {
			return clipboardCopiedMsg{id: id, err: err}
		}
		return clipboardCopiedMsg{id: id}
	}
}

// Run shows the picker and returns the selected record.
// The bool is false when the user quit without selecting.
func Run(records []ami.Record) (ami.Record, bool, error) {
	p := tea.NewProgram(NewPicker(records))
	m, err := p.Run()
	if err != nil {
		return ami.Record{}, false, fmt.Errorf("picker failed: %w", err)
	}
	rec, ok := m.(*Picker).Selected()
	return rec, ok, nil
}
