package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chatbot/internal/view"
)

// Region texts.
const (
	title           = "Chatbot"
	subtitle        = "Local chat client • mock backend"
	loadingModels   = "Loading mock models…"
	failedModels    = "Failed to load models."
	checkingBackend = "Checking..."
)

// View implements tea.Model.
func (m Model) View() string {
	th := m.theme
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, th.CardTitle.Render(title), th.Faint.Render(subtitle)),
		"  ",
		m.healthCard(),
		" ",
		m.modelsCard(),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.panel(focusModels, th.Heading.Render("MODELS")+"\n"+m.modelsRegion()),
		m.panel(focusConfig, th.Heading.Render("INFERENCE CONFIG")+"\n"+m.configRegion()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.panel(focusSystem, th.Heading.Render("SYSTEM PROMPT")+"\n"+m.system.View()),
		m.panel(focusPrompt, th.Heading.Render("USER PROMPT")+"\n"+m.prompt.View()),
		th.Panel.Render(th.Heading.Render("MOCK STREAM")+"\n"+m.responseRegion()),
	)

	return strings.Join([]string{
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		m.help.View(m.keys),
	}, "\n")
}

func (m Model) panel(f focus, body string) string {
	if m.focus == f {
		return m.theme.PanelFocused.Render(body)
	}
	return m.theme.Panel.Render(body)
}

func (m Model) healthCard() string {
	value, sub := "pending", checkingBackend
	switch {
	case m.healthPending:
	case m.healthErr != nil:
		value, sub = "error", m.healthErr.Error()
	default:
		value, sub = m.health.Status, m.health.Version
	}
	return view.RenderStatusCard(m.theme, "Backend", value, sub, view.HealthTone(m.healthPending, m.healthErr))
}

func (m Model) modelsCard() string {
	tone := view.ToneWarning
	if !m.modelsPending && m.modelsErr == nil {
		tone = view.ToneSuccess
	}
	return view.RenderStatusCard(m.theme, "Models", strconv.Itoa(len(m.comp.Models())), "Mock registry", tone)
}

func (m Model) modelsRegion() string {
	switch {
	case m.modelsPending:
		return m.theme.Muted.Render(loadingModels)
	case m.modelsErr != nil:
		return m.theme.Error.Render(failedModels)
	}
	active, _ := m.comp.ActiveModel()
	return view.RenderModelList(m.theme, m.comp.Models(), active)
}

func (m Model) configRegion() string {
	st := view.ConfigFormState{Focused: m.focus == focusConfig, Cursor: m.cfgCursor}
	if m.editing {
		st.Editing = m.fieldInput.View()
	}
	if m.fieldErr != nil {
		st.Err = m.fieldErr.Error()
	}
	return view.RenderConfigForm(m.theme, m.store.Config(), st)
}

func (m Model) responseRegion() string {
	st := view.ResponseState{State: m.comp.State(), Err: m.comp.Err()}
	if resp, ok := m.comp.Response(); ok {
		st.Response = resp
	}
	if m.comp.Pending() {
		st.Spinner = m.spinner.View()
	}
	return view.RenderResponse(m.theme, st)
}
