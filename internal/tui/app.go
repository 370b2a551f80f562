package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasky/internal/logs"
	"tasky/internal/service"
)

type viewType int

const (
	viewPicker viewType = iota
	viewSheet
)

// AppModel is the root model that dispatches to child views
type AppModel struct {
	svc         service.SheetService
	currentView viewType
	picker      PickerModel
	sheetView   SheetModel
	sheetLoaded bool
	status      string
	statusIsErr bool
	width       int
	height      int
	ready       bool
}

// NewAppModel creates the root application model. When defaultSheet is
// non-empty the named sheet is opened immediately.
func NewAppModel(svc service.SheetService, defaultSheet string) AppModel {
	m := AppModel{
		svc:    svc,
		picker: NewPickerModel(svc),
	}

	if defaultSheet != "" {
		snap, err := svc.Open(defaultSheet)
		if err != nil {
			logs.Logger.Printf("could not open default sheet %s: %v", defaultSheet, err)
		} else {
			m.sheetView = NewSheetModel(svc, snap)
			m.sheetLoaded = true
			m.currentView = viewSheet
		}
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.picker.SetSize(msg.Width, contentHeight)
		if m.sheetLoaded {
			m.sheetView.SetSize(msg.Width, contentHeight)
		}
		return m, nil

	case OpenSheetMsg:
		m.sheetView = NewSheetModel(m.svc, msg.Snapshot)
		m.sheetView.SetSize(m.width, m.height-3)
		m.sheetLoaded = true
		m.currentView = viewSheet
		m.status = ""
		return m, nil

	case BackToPickerMsg:
		m.currentView = viewPicker
		m.picker.Reload()
		m.status = ""
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.statusIsErr = msg.IsErr
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		typing := (m.currentView == viewPicker && m.picker.IsTyping()) ||
			(m.currentView == viewSheet && m.sheetLoaded && m.sheetView.IsTyping())
		if msg.String() == "q" && !typing {
			return m, tea.Quit
		}
		m.status = ""
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewPicker:
		m.picker, cmd = m.picker.Update(msg)
	case viewSheet:
		if m.sheetLoaded {
			m.sheetView, cmd = m.sheetView.Update(msg)
		}
	}
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content, hint string
	switch m.currentView {
	case viewPicker:
		content = m.picker.View()
		hint = m.picker.HintText()
	case viewSheet:
		content = m.sheetView.View()
		hint = m.sheetView.HintText()
	}

	statusText := hint
	if m.status != "" {
		if m.statusIsErr {
			statusText = ErrorStyle.Render(m.status)
		} else {
			statusText = m.status
		}
	}
	statusBar := StatusBarStyle.Width(m.width).Render(HelpStyle.Render(statusText))

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}
