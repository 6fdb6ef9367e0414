package config

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"CHATBOT_ADDR":                 ":9000",
		"CHATBOT_API_BASE_URL":         "http://example:9000/api",
		"CHATBOT_CORS_ENABLED":         "true",
		"CHATBOT_CORS_ORIGINS":         "http://a, http://b",
		"CHATBOT_CHAT_TIMEOUT_SECONDS": "7",
		"CHATBOT_LOG_FORMAT":           "",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	cfg, err := Defaults().applyEnv(lookup)
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.APIBaseURL != "http://example:9000/api" || !cfg.CORSEnabled || cfg.ChatTimeoutSeconds != 7 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("origins=%v", cfg.CORSOrigins)
	}
	// empty values do not clobber
	if cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("log format=%q", cfg.LogFormat)
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	for k, v := range map[string]string{
		"CHATBOT_CORS_ENABLED":   "maybe",
		"CHATBOT_MAX_BODY_BYTES": "lots",
	} {
		lookup := func(name string) (string, bool) {
			if name == k {
				return v, true
			}
			return "", false
		}
		if _, err := Defaults().applyEnv(lookup); err == nil {
			t.Fatalf("%s=%s: expected error", k, v)
		}
	}
}

func TestApplyEnvProcess(t *testing.T) {
	t.Setenv("CHATBOT_LOG_LEVEL", "debug")
	cfg, err := Config{}.ApplyEnv()
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level=%q", cfg.LogLevel)
	}
}
