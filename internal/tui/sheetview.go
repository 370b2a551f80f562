package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasky/internal/service"
	"tasky/internal/view"
)

type sheetMode int

const (
	sheetModeNormal sheetMode = iota
	sheetModeAdd
	sheetModeEdit
)

// itemRef addresses one rendered row of the snapshot.
type itemRef struct {
	day    string
	itemID string
}

// SheetModel renders one sheet and routes mutations through the service.
type SheetModel struct {
	svc       service.SheetService
	snap      view.Snapshot
	rows      []itemRef
	cursor    int
	mode      sheetMode
	textInput textinput.Model
	width     int
	height    int
}

func NewSheetModel(svc service.SheetService, snap view.Snapshot) SheetModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60

	m := SheetModel{svc: svc, textInput: ti}
	m.setSnapshot(snap)
	return m
}

// SetSize updates the view dimensions
func (m *SheetModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// HintText returns the status hint for the current mode.
func (m SheetModel) HintText() string {
	switch m.mode {
	case sheetModeAdd:
		return "enter:add  esc:cancel"
	case sheetModeEdit:
		return "enter:save (empty deletes)  esc:cancel"
	default:
		return "j/k:navigate  space:toggle  a:add  e:edit  d:delete  r:reload  esc:back  q:quit"
	}
}

// IsTyping returns true when a text input is active.
func (m SheetModel) IsTyping() bool {
	return m.mode != sheetModeNormal
}

func (m *SheetModel) setSnapshot(snap view.Snapshot) {
	m.snap = snap
	m.rows = m.rows[:0]
	for _, d := range snap.Days {
		for _, it := range d.Items {
			m.rows = append(m.rows, itemRef{day: d.Key, itemID: it.ID})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m SheetModel) currentItem() (view.Item, itemRef, bool) {
	if m.cursor >= len(m.rows) {
		return view.Item{}, itemRef{}, false
	}
	ref := m.rows[m.cursor]
	for _, d := range m.snap.Days {
		if d.Key != ref.day {
			continue
		}
		for _, it := range d.Items {
			if it.ID == ref.itemID {
				return it, ref, true
			}
		}
	}
	return view.Item{}, itemRef{}, false
}

func (m SheetModel) Init() tea.Cmd {
	return nil
}

// Update handles sheet view events as a child view.
func (m SheetModel) Update(msg tea.Msg) (SheetModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != sheetModeNormal {
		return m.updateInput(keyMsg)
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if _, ref, ok := m.currentItem(); ok {
			snap, err := m.svc.Toggle(m.snap.SheetID, ref.day, ref.itemID)
			if err != nil {
				return m, statusErr(err)
			}
			m.setSnapshot(snap)
		}
	case "a":
		m.mode = sheetModeAdd
		m.textInput.Placeholder = "New item"
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	case "e":
		if it, _, ok := m.currentItem(); ok {
			m.mode = sheetModeEdit
			m.textInput.Placeholder = ""
			m.textInput.SetValue(it.Text)
			m.textInput.Focus()
			return m, textinput.Blink
		}
	case "d":
		if _, ref, ok := m.currentItem(); ok {
			snap, err := m.svc.RemoveItem(m.snap.SheetID, ref.day, ref.itemID)
			if err != nil {
				return m, statusErr(err)
			}
			m.setSnapshot(snap)
		}
	case "r":
		snap, err := m.svc.Open(m.snap.SheetID)
		if err != nil {
			return m, statusErr(err)
		}
		m.setSnapshot(snap)
	case "esc":
		return m, func() tea.Msg { return BackToPickerMsg{} }
	}
	return m, nil
}

func (m SheetModel) updateInput(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = sheetModeNormal
		return m, nil
	case "enter":
		text := m.textInput.Value()
		mode := m.mode
		m.mode = sheetModeNormal

		if mode == sheetModeAdd {
			day, ok := m.todayKey()
			if !ok {
				return m, status("No entry for today; reload with r")
			}
			snap, err := m.svc.AddItem(m.snap.SheetID, day, strings.TrimSpace(text))
			if err != nil {
				return m, statusErr(err)
			}
			m.setSnapshot(snap)
			return m, nil
		}

		_, ref, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		snap, err := m.svc.EditText(m.snap.SheetID, ref.day, ref.itemID, text)
		if err != nil {
			return m, statusErr(err)
		}
		m.setSnapshot(snap)
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m SheetModel) todayKey() (string, bool) {
	for _, d := range m.snap.Days {
		if d.Today {
			return d.Key, true
		}
	}
	return "", false
}

func (m SheetModel) View() string {
	var content string
	content += TitleStyle.Render(m.snap.Title) + "\n"
	if m.snap.Description != "" {
		content += MutedStyle.Render(m.snap.Description) + "\n"
	}

	row := 0
	for _, d := range m.snap.Days {
		header := d.Display
		if d.Today {
			content += "\n" + TodayStyle.Render(header+" — today") + "\n"
		} else {
			content += "\n" + DayStyle.Render(header) + "\n"
		}
		if len(d.Items) == 0 {
			content += MutedStyle.Render("  (no items yet — press a)") + "\n"
		}
		for _, it := range d.Items {
			content += m.renderItem(it, row == m.cursor) + "\n"
			row++
		}
	}

	if m.mode != sheetModeNormal {
		prompt := "Add item"
		if m.mode == sheetModeEdit {
			prompt = "Edit item"
		}
		content += "\n" + InputBoxStyle.Render(SubtitleStyle.Render(prompt+": ")+m.textInput.View()) + "\n"
	}

	return content
}

func (m SheetModel) renderItem(it view.Item, selected bool) string {
	check := "[ ]"
	if it.Completed {
		check = "[x]"
	}

	text := renderSpans(it.Text, it.Spans, it.Completed)

	meta := "added " + it.AddedAt.Format("Jan 2 15:04")
	if it.ClosedAt != nil {
		meta += " · closed " + it.ClosedAt.Format("Jan 2 15:04")
	}

	prefix := "  "
	if selected {
		prefix = CursorStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s  %s", prefix, check, text, MutedStyle.Render(meta))
}

// renderSpans colors the bracketed segments of an item's text with their
// derived hue; completed items are dimmed and struck through instead.
func renderSpans(text string, spans []view.Span, completed bool) string {
	if completed {
		return DoneStyle.Render(text)
	}
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(text[last:span.Start])
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(span.Color))
		b.WriteString(style.Render(span.Text))
		last = span.End
	}
	b.WriteString(text[last:])
	return b.String()
}
