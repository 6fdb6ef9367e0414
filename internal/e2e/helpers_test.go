package e2e

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"chatbot/internal/apiclient"
	"chatbot/internal/backend"
	"chatbot/internal/fixtures"
	"chatbot/internal/httpapi"
)

// newServer starts the mock backend over the fixtures in dir ("" = built-in)
// and returns a client pointed at its API prefix.
func newServer(t *testing.T, dir string, cfg backend.Config) (*httptest.Server, *apiclient.Client) {
	t.Helper()
	set, err := fixtures.LoadDir(dir)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	cfg.Fixtures = set
	svc := backend.New(cfg)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, apiclient.New(srv.URL+httpapi.DefaultAPIPrefix, apiclient.WithLogger(zerolog.Nop()))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
