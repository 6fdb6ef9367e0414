package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"chatbot/internal/chatconfig"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		w := textWidth(msg.Width)
		m.system.SetWidth(w)
		m.prompt.SetWidth(w)
		return m, nil

	case healthMsg:
		m.healthPending = false
		m.health, m.healthErr = msg.Health, msg.Err
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("health check failed")
		}
		return m, nil

	case modelsMsg:
		m.modelsPending = false
		m.modelsErr = msg.Err
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("model fetch failed")
			return m, nil
		}
		m.comp.SetModels(msg.Models)
		return m, nil

	case chatResultMsg:
		if !m.comp.Complete(msg.Result) {
			m.log.Debug().Str("submission", msg.Result.ID).Msg("late chat result dropped")
		}
		return m, nil

	case configChangedMsg:
		m.fieldErr = nil
		// close the editor if its field changed underneath it
		if m.editing && m.editedValue() != m.editFrom {
			m.editing = false
			m.fieldInput.Blur()
		}
		return m, m.watch.next(m.ctx)

	case spinner.TickMsg:
		if !m.comp.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if m.editing {
		return m.handleEdit(msg)
	}
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil
	}

	switch m.focus {
	case focusModels:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Select):
			if id, ok := m.comp.ActiveModel(); ok {
				m.comp.Select(id)
			}
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil

	case focusConfig:
		n := len(chatconfig.FieldNames)
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cfgCursor = (m.cfgCursor - 1 + n) % n
		case key.Matches(msg, m.keys.Down):
			m.cfgCursor = (m.cfgCursor + 1) % n
		case key.Matches(msg, m.keys.Select):
			m.editing = true
			m.fieldErr = nil
			m.editFrom = m.editedValue()
			m.fieldInput.SetValue(m.editFrom)
			m.fieldInput.CursorEnd()
			return m, m.fieldInput.Focus()
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil

	case focusSystem:
		var cmd tea.Cmd
		m.system, cmd = m.system.Update(msg)
		m.comp.SetSystemPrompt(m.system.Value())
		return m, cmd

	case focusPrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		m.comp.SetPrompt(m.prompt.Value())
		return m, cmd
	}
	return m, nil
}

// handleEdit routes keys to the config field editor.
func (m Model) handleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		name := chatconfig.FieldNames[m.cfgCursor]
		if _, err := m.store.SetField(name, m.fieldInput.Value()); err != nil {
			m.fieldErr = err
		}
		m.editing = false
		m.fieldInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.fieldInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

// editedValue is the stored text of the field under the config cursor.
func (m Model) editedValue() string {
	return chatconfig.FieldValue(m.store.Config(), chatconfig.FieldNames[m.cfgCursor])
}

func textWidth(total int) int {
	w := total*2/3 - 6
	if w < 20 {
		w = 20
	}
	return w
}
