package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitle = "{{.Base}}"
	dateLayout   = "2006-01-02"
)

// Templates render publish metadata for videos uploaded without explicit
// title, description or tags.
type Templates struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tags        string `yaml:"tags"`
}

type Params struct {
	Name  string
	Base  string
	Ext   string
	Index int
	Date  string
}

func NewParams(filename string, index int, now time.Time) Params {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	return Params{
		Name:  name,
		Base:  strings.TrimSuffix(name, ext),
		Ext:   strings.TrimPrefix(ext, "."),
		Index: index,
		Date:  now.Format(dateLayout),
	}
}

func Default() *Templates {
	return &Templates{Title: defaultTitle}
}

// LoadFrom reads templates from path. A missing file yields Default.
func LoadFrom(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	t := Default()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse templates file: %w", err)
	}
	if t.Title == "" {
		t.Title = defaultTitle
	}

	return t, nil
}

func (t *Templates) RenderTitle(params Params) (string, error) {
	title, err := render(t.Title, params)
	return strings.TrimSpace(title), err
}

func (t *Templates) RenderDescription(params Params) (string, error) {
	description, err := render(t.Description, params)
	return strings.TrimSpace(description), err
}

// RenderTags renders the tags template and splits it on commas.
func (t *Templates) RenderTags(params Params) ([]string, error) {
	rendered, err := render(t.Tags, params)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, tag := range strings.Split(rendered, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func render(tmpl string, data any) (string, error) {
	if tmpl == "" {
		return "", nil
	}

	t, err := template.New("metadata").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Save writes t to path as YAML.
func (t *Templates) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write templates file: %w", err)
	}
	return nil
}
