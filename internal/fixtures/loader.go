// Package fixtures loads the canned model registry and chat stream served by
// the mock backend.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chatbot/internal/common/fsutil"
	"chatbot/pkg/types"
)

// Fixture base names. Each may be stored as .json, .yaml or .yml.
const (
	ModelsFixture = "models"
	StreamFixture = "chat_stream"
)

//go:embed data/*.json
var embedded embed.FS

// Set is one loaded fixture bundle.
type Set struct {
	Models []types.ModelCard
	Stream []types.ChatChunk
}

// Default returns the fixtures compiled into the binary.
func Default() (Set, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return Set{}, err
	}
	return load(sub, "embedded")
}

// LoadDir reads fixtures from dir. An empty dir selects Default.
func LoadDir(dir string) (Set, error) {
	if strings.TrimSpace(dir) == "" {
		return Default()
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return Set{}, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Set{}, fmt.Errorf("abs path: %w", err)
	}
	if !fsutil.PathExists(abs) {
		return Set{}, fmt.Errorf("fixtures dir %s: %w", abs, os.ErrNotExist)
	}
	return load(os.DirFS(abs), abs)
}

func load(fsys fs.FS, where string) (Set, error) {
	var s Set
	if err := readFixture(fsys, where, ModelsFixture, &s.Models); err != nil {
		return Set{}, err
	}
	if err := readFixture(fsys, where, StreamFixture, &s.Stream); err != nil {
		return Set{}, err
	}
	if s.Models == nil {
		s.Models = []types.ModelCard{}
	}
	if err := validate(s); err != nil {
		return Set{}, fmt.Errorf("%s: %w", where, err)
	}
	return s, nil
}

// readFixture decodes the first of name.json, name.yaml, name.yml found in fsys.
func readFixture(fsys fs.FS, where, name string, out any) error {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		b, err := fs.ReadFile(fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read fixture %s%s: %w", name, ext, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(b, out)
		} else {
			err = yaml.Unmarshal(b, out)
		}
		if err != nil {
			return fmt.Errorf("parse fixture %s%s: %w", name, ext, err)
		}
		return nil
	}
	return &NotFoundError{Name: name, Dir: where}
}

// NotFoundError reports a fixture missing from the fixtures directory.
type NotFoundError struct {
	Name string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Fixture '%s.json' not found in %s.", e.Name, e.Dir)
}

func validate(s Set) error {
	seen := make(map[string]bool, len(s.Models))
	for i, m := range s.Models {
		if m.ID == "" {
			return fmt.Errorf("model %d: empty id", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("model %d: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = true
		if m.ContextLength <= 0 {
			return fmt.Errorf("model %q: context_length must be positive", m.ID)
		}
	}
	if err := types.ValidateStream(s.Stream); err != nil {
		return fmt.Errorf("chat stream: %w", err)
	}
	return nil
}
