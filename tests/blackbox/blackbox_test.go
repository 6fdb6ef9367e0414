package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "chatbot")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/chatbot")
	cmd.Dir = projectRootFromThisFile(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, port int, extra ...string) *serverProc {
	t.Helper()
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := append([]string{"serve", "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--log-format", "json"}, extra...)
	cmd := exec.Command(bin, args...)
	cmd.Env = cleanEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill(); _, _ = cmd.Process.Wait() })
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return &serverProc{cmd: cmd, base: base}
}

// cleanEnv drops CHATBOT_* so the host environment cannot leak into the run.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "CHATBOT_") {
			env = append(env, kv)
		}
	}
	return env
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := buildBinary(t)
	sp := startServer(t, bin, findFreePort(t))

	resp, body := get(t, sp.base+"/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/api/health %d %s", resp.StatusCode, string(body))
	}
	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &health); err != nil || health.Status != "ok" {
		t.Fatalf("health body %s (err=%v)", string(body), err)
	}

	resp, body = get(t, sp.base+"/api/mock/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/api/mock/models %d %s", resp.StatusCode, string(body))
	}
	var models []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &models); err != nil || len(models) == 0 {
		t.Fatalf("models body %s (err=%v)", string(body), err)
	}

	payload := []byte(fmt.Sprintf(`{"model_id":%q,"prompt":"hello"}`, models[0].ID))
	resp, body = postJSON(t, sp.base+"/api/mock/chat", payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/api/mock/chat %d %s", resp.StatusCode, string(body))
	}
	var chat struct {
		ModelID string `json:"model_id"`
		Stream  []struct {
			Index   int  `json:"index"`
			IsFinal bool `json:"is_final"`
		} `json:"stream"`
	}
	if err := json.Unmarshal(body, &chat); err != nil {
		t.Fatalf("chat decode: %v", err)
	}
	if chat.ModelID != models[0].ID || len(chat.Stream) == 0 || !chat.Stream[len(chat.Stream)-1].IsFinal {
		t.Fatalf("unexpected chat body %s", string(body))
	}

	resp, body = postJSON(t, sp.base+"/api/mock/chat", []byte(`{"model_id":"nope","prompt":"hello"}`))
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(string(body), "Unknown model_id 'nope'.") {
		t.Fatalf("unknown model: %d %s", resp.StatusCode, string(body))
	}

	resp, body = get(t, sp.base+"/metrics")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "chatbot_http_requests_total") {
		t.Fatalf("/metrics %d", resp.StatusCode)
	}

	out, err := exec.Command(bin, "health", "--api-base-url", sp.base+"/api").CombinedOutput()
	if err != nil {
		t.Fatalf("chatbot health: %v\n%s", err, string(out))
	}
	if !strings.Contains(string(out), "ok") {
		t.Fatalf("chatbot health output: %s", string(out))
	}

	out, err = exec.Command(bin, "models", "--json", "--api-base-url", sp.base+"/api").CombinedOutput()
	if err != nil || !strings.Contains(string(out), models[0].ID) {
		t.Fatalf("chatbot models: %v\n%s", err, string(out))
	}
}

func TestBlackbox_FixturesDirAndPrefix(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := buildBinary(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "models.json"), []byte(`[{"id":"solo","name":"Solo","quantization":"Q4","context_length":1024,"parameter_count":1,"description":"only"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chat_stream.json"), []byte(`[{"token":"done","index":0,"is_final":true}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	sp := startServer(t, bin, findFreePort(t), "--fixtures-dir", dir, "--api-prefix", "/v1")

	resp, body := get(t, sp.base+"/v1/mock/models")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"solo"`) {
		t.Fatalf("/v1/mock/models %d %s", resp.StatusCode, string(body))
	}
	resp, _ = get(t, sp.base+"/api/mock/models")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("old prefix should 404, got %d", resp.StatusCode)
	}
}
