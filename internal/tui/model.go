// Package tui is the interactive terminal chat client.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"chatbot/internal/chatconfig"
	"chatbot/internal/composer"
	"chatbot/internal/view"
	"chatbot/pkg/types"
)

type focus int

const (
	focusModels focus = iota
	focusConfig
	focusSystem
	focusPrompt
	focusCount
)

// Options configures a Model.
type Options struct {
	API    API
	Store  *chatconfig.Store
	Theme  view.Theme
	Logger zerolog.Logger
	// Prompt and SystemPrompt seed the text areas; empty keeps the defaults.
	Prompt       string
	SystemPrompt string
}

// Model is the bubbletea model of the chat screen.
type Model struct {
	ctx   context.Context
	api   API
	store *chatconfig.Store
	comp  *composer.Composer
	theme view.Theme
	keys  KeyMap
	log   zerolog.Logger
	watch *configWatch

	health        types.HealthResponse
	healthPending bool
	healthErr     error
	modelsPending bool
	modelsErr     error

	focus      focus
	cfgCursor  int
	editing    bool
	editFrom   string
	fieldInput textinput.Model
	fieldErr   error
	system     textarea.Model
	prompt     textarea.Model
	spinner    spinner.Model
	help       help.Model
	width      int
}

// New builds the model. ctx bounds every backend call.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = chatconfig.New(opts.Logger)
	}
	prompt, system := composer.DefaultPrompt, composer.DefaultSystemPrompt
	if opts.Prompt != "" {
		prompt = opts.Prompt
	}
	if opts.SystemPrompt != "" {
		system = opts.SystemPrompt
	}

	sys := textarea.New()
	sys.ShowLineNumbers = false
	sys.Placeholder = "System prompt"
	sys.SetHeight(3)
	sys.SetValue(system)

	pr := textarea.New()
	pr.ShowLineNumbers = false
	pr.Placeholder = "User prompt"
	pr.SetHeight(5)
	pr.SetValue(prompt)

	fi := textinput.New()
	fi.Prompt = ""
	fi.CharLimit = 16

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:   ctx,
		api:   opts.API,
		store: store,
		comp: composer.New(store, opts.API,
			composer.WithLogger(opts.Logger),
			composer.WithPrompts(prompt, system)),
		theme:         opts.Theme,
		keys:          DefaultKeyMap(),
		log:           opts.Logger,
		watch:         watchConfig(store),
		healthPending: true,
		modelsPending: true,
		fieldInput:    fi,
		system:        sys,
		prompt:        pr,
		spinner:       sp,
		help:          help.New(),
	}
}

// Composer exposes the session composer.
func (m Model) Composer() *composer.Composer { return m.comp }

// Init fetches health and models in parallel and starts listening for
// config changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchHealthCmd(m.ctx, m.api),
		fetchModelsCmd(m.ctx, m.api),
		m.watch.next(m.ctx),
	)
}

// Close drops the store subscription. It is safe to call more than once.
func (m Model) Close() { m.watch.close() }

// quit closes the model and ends the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// reset restores the default config and forgets any pending chat; its
// result is discarded when it arrives.
func (m *Model) reset() {
	m.comp.Abandon()
	m.store.Reset()
	m.fieldErr = nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = (f + focusCount) % focusCount
	m.system.Blur()
	m.prompt.Blur()
	switch m.focus {
	case focusSystem:
		return m.system.Focus()
	case focusPrompt:
		return m.prompt.Focus()
	}
	return nil
}

// submit starts a chat when the composer allows it; otherwise it is a no-op.
func (m *Model) submit() tea.Cmd {
	s, ok := m.comp.Submit()
	if !ok {
		return nil
	}
	return tea.Batch(runSubmissionCmd(m.ctx, s), m.spinner.Tick)
}

// moveSelection selects the model delta positions away from the active one.
func (m *Model) moveSelection(delta int) {
	models := m.comp.Models()
	if len(models) == 0 {
		return
	}
	active, _ := m.comp.ActiveModel()
	i := 0
	for j, mc := range models {
		if mc.ID == active {
			i = j
			break
		}
	}
	i = (i + delta + len(models)) % len(models)
	m.comp.Select(models[i].ID)
}
