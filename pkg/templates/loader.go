package templates

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// LoadFS walks the provided filesystem and registers every JSON/YAML template
// document it finds. A document holds either a single template or a list
// under "templates". When fsys is nil the returned registry is empty.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := NewRegistry()
	if err := registry.LoadFS(fsys); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadDir is LoadFS over a directory on disk.
func LoadDir(dir string) (*Registry, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("templates: directory is required")
	}
	return LoadFS(os.DirFS(dir))
}

// Builtin returns a fresh registry holding the embedded templates.
func Builtin() (*Registry, error) {
	return LoadFS(EmbeddedFS())
}

// LoadFS adds the templates found in fsys to the registry.
func (r *Registry) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	sources := make(map[string]string)
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}

		parsed, err := ParseDocument(data, path)
		if err != nil {
			return err
		}

		for _, tpl := range parsed {
			if prev, exists := sources[tpl.ID]; exists {
				return fmt.Errorf("templates: duplicate template %q (file %s, first defined in %s)", tpl.ID, path, prev)
			}
			if err := r.Register(tpl); err != nil {
				return fmt.Errorf("templates: file %s: %w", path, err)
			}
			sources[tpl.ID] = path
		}
		return nil
	})
}

type documentFile struct {
	Templates      []model.Template `json:"templates" yaml:"templates"`
	model.Template `yaml:",inline"`
}

// ParseDocument decodes a template document, trying JSON first and YAML
// second. source is only used in error messages.
func ParseDocument(data []byte, source string) ([]model.Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("templates: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("templates: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	out := make([]model.Template, 0, len(doc.Templates)+1)
	if doc.Template.ID != "" || len(doc.Template.Elements) > 0 {
		out = append(out, doc.Template)
	}
	out = append(out, doc.Templates...)
	if len(out) == 0 {
		return nil, fmt.Errorf("templates: file %s defines no templates", source)
	}
	for idx, tpl := range out {
		if strings.TrimSpace(tpl.ID) == "" {
			return nil, fmt.Errorf("templates: file %s defines a template without id at index %d", source, idx)
		}
	}
	return out, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
