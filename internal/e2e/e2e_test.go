package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chatbot/internal/apiclient"
	"chatbot/internal/backend"
	"chatbot/internal/chatconfig"
	"chatbot/internal/composer"
	"chatbot/internal/view"
	"chatbot/pkg/types"
)

// TestE2E_ComposerRoundTrip drives a full session: fetch models, edit config,
// submit, render.
func TestE2E_ComposerRoundTrip(t *testing.T) {
	_, api := newServer(t, "", backend.Config{})
	ctx := context.Background()

	h, err := api.FetchHealth(ctx)
	if err != nil || h.Status != "ok" {
		t.Fatalf("health=%+v err=%v", h, err)
	}
	models, err := api.FetchModels(ctx)
	if err != nil || len(models) == 0 {
		t.Fatalf("models=%v err=%v", models, err)
	}

	store := chatconfig.New(zerolog.Nop())
	if _, err := store.SetField("top p", "0.9"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	c := composer.New(store, api)
	c.SetModels(models)

	resp, sent, err := c.SubmitAndWait(ctx)
	if !sent || err != nil {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if resp.ModelID != models[0].ID {
		t.Fatalf("fallback model not used: %q", resp.ModelID)
	}
	if c.State() != composer.StateHasData {
		t.Fatalf("state=%s", c.State())
	}
	lines := view.ResponseLines(resp)
	if len(lines) == 0 || !lines[len(lines)-1].Final {
		t.Fatalf("last line should be final: %+v", lines)
	}
}

func TestE2E_UnknownModelSurfacesBody(t *testing.T) {
	_, api := newServer(t, "", backend.Config{})
	_, err := api.CreateChat(context.Background(), types.ChatRequest{ModelID: "ghost", Prompt: "hi", Config: types.DefaultChatConfig()})
	if !apiclient.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	// the client does not parse error bodies
	if want := `{"error":"Unknown model_id 'ghost'.","code":404}` + "\n"; err.Error() != want {
		t.Fatalf("message=%q want %q", err.Error(), want)
	}
}

func TestE2E_OutOfRangeConfigRejectedByBackend(t *testing.T) {
	_, api := newServer(t, "", backend.Config{})
	store := chatconfig.New(zerolog.Nop())
	store.Update(types.ChatConfigPatch{MaxTokens: ptr(10000)})
	c := composer.New(store, api)
	models, _ := api.FetchModels(context.Background())
	c.SetModels(models)

	_, sent, err := c.SubmitAndWait(context.Background())
	if !sent {
		t.Fatal("expected a request to be sent")
	}
	if !apiclient.IsStatus(err, http.StatusUnprocessableEntity) {
		t.Fatalf("expected 422, got %v", err)
	}
	if c.State() != composer.StateFailed {
		t.Fatalf("state=%s", c.State())
	}
}

func TestE2E_CustomFixturesDir(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "models.yaml", "- id: tiny\n  name: Tiny\n  quantization: Q2_K\n  context_length: 512\n  parameter_count: 0.5\n  description: test model\n")
	writeFixture(t, dir, "chat_stream.json", `[{"token":"a","index":0},{"token":"b","index":1,"is_final":true}]`)
	_, api := newServer(t, dir, backend.Config{})

	models, err := api.FetchModels(context.Background())
	if err != nil || len(models) != 1 || models[0].ID != "tiny" {
		t.Fatalf("models=%+v err=%v", models, err)
	}
	resp, err := api.CreateChat(context.Background(), types.ChatRequest{ModelID: "tiny", Prompt: "x", Config: types.DefaultChatConfig()})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if types.JoinTokens(resp.Stream) != "ab" {
		t.Fatalf("stream=%+v", resp.Stream)
	}
}

// TestE2E_PendingBlocksSecondRequest checks one in-flight submission against
// a slow backend.
func TestE2E_PendingBlocksSecondRequest(t *testing.T) {
	pub := backend.NewMemoryPublisher()
	_, api := newServer(t, "", backend.Config{ChatDelay: 100 * time.Millisecond, Publisher: pub})
	models, err := api.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	c := composer.New(chatconfig.New(zerolog.Nop()), api)
	c.SetModels(models)

	s, ok := c.Submit()
	if !ok {
		t.Fatal("first submit refused")
	}
	done := make(chan composer.Result, 1)
	go func() { done <- s.Run(context.Background()) }()

	if _, ok := c.Submit(); ok {
		t.Fatal("second submit accepted while pending")
	}
	if c.State() != composer.StateLoading {
		t.Fatalf("state=%s", c.State())
	}
	if !c.Complete(<-done) {
		t.Fatal("result discarded")
	}
	if n := len(pub.Named(backend.EventChatServed)); n != 1 {
		t.Fatalf("backend served %d chats, want 1", n)
	}
}

func ptr[T any](v T) *T { return &v }
