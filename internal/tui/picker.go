package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"tasky/internal/logs"
	"tasky/internal/service"
)

type pickerMode int

const (
	modeList pickerMode = iota
	modeSearch
	modeCreateTitle
	modeCreateDesc
)

// PickerModel lists sheets with fuzzy filtering and a create flow.
type PickerModel struct {
	svc         service.SheetService
	sheets      []service.SheetInfo
	filtered    []int // indices into sheets
	selected    int
	mode        pickerMode
	textInput   textinput.Model
	searchQuery string
	newTitle    string
	width       int
	height      int
}

func NewPickerModel(svc service.SheetService) PickerModel {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40

	m := PickerModel{svc: svc, textInput: ti}
	m.Reload()
	return m
}

// SetSize updates the view dimensions
func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload refreshes the sheet list from the service.
func (m *PickerModel) Reload() {
	infos, err := m.svc.List()
	if err != nil {
		logs.Logger.Printf("picker: list sheets: %v", err)
	}
	m.sheets = infos
	m.applyFilter()
}

// IsTyping returns true when the picker has an active text input.
func (m PickerModel) IsTyping() bool {
	return m.mode != modeList
}

// HintText returns the status hint for the current picker mode.
func (m PickerModel) HintText() string {
	switch m.mode {
	case modeSearch:
		return "type to filter  enter:confirm  esc:cancel"
	case modeCreateTitle, modeCreateDesc:
		return "enter:confirm  esc:cancel"
	default:
		return "j/k:navigate  /:search  enter:open  n:new sheet  D:delete  q:quit"
	}
}

func (m *PickerModel) applyFilter() {
	if m.searchQuery == "" {
		m.filtered = make([]int, len(m.sheets))
		for i := range m.sheets {
			m.filtered[i] = i
		}
	} else {
		names := make([]string, len(m.sheets))
		for i, info := range m.sheets {
			names[i] = info.ID + " " + info.Title
		}
		matches := fuzzy.Find(m.searchQuery, names)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles picker events as a child view.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeList:
		return m.updateList(keyMsg)
	case modeSearch:
		return m.updateSearch(keyMsg)
	case modeCreateTitle, modeCreateDesc:
		return m.updateCreate(keyMsg)
	}
	return m, nil
}

func (m PickerModel) updateList(msg tea.KeyMsg) (PickerModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "/":
		m.mode = modeSearch
		m.textInput.Placeholder = "Filter sheets..."
		m.textInput.SetValue(m.searchQuery)
		m.textInput.Focus()
		return m, textinput.Blink
	case "n":
		m.mode = modeCreateTitle
		m.textInput.Placeholder = "Sheet title"
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	case "D":
		if info, ok := m.current(); ok {
			if err := m.svc.Delete(info.ID); err != nil {
				return m, statusErr(err)
			}
			m.Reload()
			return m, status(fmt.Sprintf("Deleted %s", info.ID))
		}
	case "enter":
		if info, ok := m.current(); ok {
			snap, err := m.svc.Open(info.ID)
			if err != nil {
				return m, statusErr(err)
			}
			return m, func() tea.Msg { return OpenSheetMsg{Snapshot: snap} }
		}
	}
	return m, nil
}

func (m PickerModel) updateSearch(msg tea.KeyMsg) (PickerModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		return m, nil
	case "esc":
		m.mode = modeList
		m.searchQuery = ""
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.searchQuery = m.textInput.Value()
	m.applyFilter()
	return m, cmd
}

func (m PickerModel) updateCreate(msg tea.KeyMsg) (PickerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "enter":
		if m.mode == modeCreateTitle {
			m.newTitle = m.textInput.Value()
			if service.Slugify(m.newTitle) == "" {
				return m, status("Sheet title cannot be empty")
			}
			m.mode = modeCreateDesc
			m.textInput.Placeholder = "Description (optional)"
			m.textInput.SetValue("")
			return m, nil
		}

		snap, err := m.svc.Create(service.Slugify(m.newTitle), m.newTitle, m.textInput.Value())
		m.mode = modeList
		if err != nil {
			return m, statusErr(err)
		}
		m.Reload()
		return m, func() tea.Msg { return OpenSheetMsg{Snapshot: snap} }
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m PickerModel) current() (service.SheetInfo, bool) {
	if len(m.filtered) == 0 {
		return service.SheetInfo{}, false
	}
	return m.sheets[m.filtered[m.selected]], true
}

func (m PickerModel) View() string {
	var content string
	content += TitleStyle.Render("Sheets") + "\n\n"

	if m.mode == modeSearch || m.mode == modeCreateTitle || m.mode == modeCreateDesc {
		prompt := "Filter"
		if m.mode == modeCreateTitle {
			prompt = "New sheet title"
		} else if m.mode == modeCreateDesc {
			prompt = "Description"
		}
		content += InputBoxStyle.Render(SubtitleStyle.Render(prompt+": ")+m.textInput.View()) + "\n\n"
	}

	if len(m.filtered) == 0 {
		content += MutedStyle.Render("No sheets. Press n to create one.") + "\n"
	}

	for i, idx := range m.filtered {
		info := m.sheets[idx]
		id := fmt.Sprintf("%-20s", info.ID)
		var line string
		if i == m.selected && m.mode != modeCreateTitle && m.mode != modeCreateDesc {
			line = CursorStyle.Render("> ") + SelectedStyle.Render(id) + " " + MutedStyle.Render(info.Title)
		} else {
			line = "  " + id + " " + MutedStyle.Render(info.Title)
		}
		content += line + "\n"
	}

	return content
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func statusErr(err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: err.Error(), IsErr: true} }
}
