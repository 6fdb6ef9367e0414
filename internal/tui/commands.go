package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"chatbot/internal/chatconfig"
	"chatbot/internal/composer"
	"chatbot/pkg/types"
)

// API is the backend surface the UI needs. *apiclient.Client satisfies it.
type API interface {
	composer.ChatCreator
	FetchHealth(ctx context.Context) (types.HealthResponse, error)
	FetchModels(ctx context.Context) ([]types.ModelCard, error)
}

type healthMsg struct {
	Health types.HealthResponse
	Err    error
}

type modelsMsg struct {
	Models []types.ModelCard
	Err    error
}

type chatResultMsg struct {
	Result composer.Result
}

func fetchHealthCmd(ctx context.Context, api API) tea.Cmd {
	return func() tea.Msg {
		h, err := api.FetchHealth(ctx)
		return healthMsg{Health: h, Err: err}
	}
}

func fetchModelsCmd(ctx context.Context, api API) tea.Cmd {
	return func() tea.Msg {
		models, err := api.FetchModels(ctx)
		return modelsMsg{Models: models, Err: err}
	}
}

func runSubmissionCmd(ctx context.Context, s *composer.Submission) tea.Cmd {
	return func() tea.Msg {
		return chatResultMsg{Result: s.Run(ctx)}
	}
}

// configChangedMsg reports that the store changed since the last one.
type configChangedMsg struct{}

// configWatch turns store notifications into messages. Notifications that
// arrive while one is already queued are coalesced.
type configWatch struct {
	changed chan struct{}
	done    chan struct{}
	cancel  func()
	once    sync.Once
}

func watchConfig(store *chatconfig.Store) *configWatch {
	w := &configWatch{changed: make(chan struct{}, 1), done: make(chan struct{})}
	w.cancel = store.Subscribe(func(types.ChatConfig) {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	})
	return w
}

// next waits for the following change. It yields nil once the watch is
// closed or ctx is done.
func (w *configWatch) next(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changed:
			return configChangedMsg{}
		case <-w.done:
		case <-ctx.Done():
		}
		return nil
	}
}

func (w *configWatch) close() {
	w.once.Do(func() {
		w.cancel()
		close(w.done)
	})
}
