package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/craft/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Port is the preview server port.
	Port int

	// Bucket is the publish bucket, if known.
	Bucket string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to file contents.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"gallery": galleryTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "template %q not found", name).
			WithSuggestion("Available templates: gallery, minimal")
	}
	return tmpl, nil
}

// List returns all template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the relative paths the template writes, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the template into dir. Existing files are left alone and
// reported as an error before anything is written.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	for _, rel := range t.Paths() {
		if _, err := os.Stat(filepath.Join(dir, rel)); err == nil {
			return errors.Newf(errors.CategoryCLI, "%s already exists", rel).
				WithSuggestion("Run craft init in an empty directory")
		}
	}

	for _, rel := range t.Paths() {
		tmpl, err := template.New(rel).Parse(t.Files[rel])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", rel, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", rel, err)
		}

		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(full, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "craft.json and a single page",
		Files: map[string]string{
			"craft.json": `{
  "name": "{{.ProjectName}}",
  "templates": "templates",
  "dev": {
    "port": {{.Port}},
    "hotReload": true
  }
}
`,
			"templates/index.html": `<main>
  <h1>{{.ProjectName}}</h1>
  <Card title="#param:title">
    <p>Edit templates/index.html and save to reload.</p>
    <Button variant="primary">Get started</Button>
  </Card>
</main>
`,
		},
	}
}

func galleryTemplate() *Template {
	return &Template{
		Name:        "gallery",
		Description: "One page per reference component",
		Files: map[string]string{
			"craft.yaml": `name: {{.ProjectName}}
templates: templates
dev:
  port: {{.Port}}
  hotReload: true
  watch:
    - styles
metrics:
  enabled: true
log:
  level: info
  format: text
{{- if .Bucket}}
publish:
  bucket: {{.Bucket}}
  prefix: {{.ProjectName}}
{{- end}}
`,
			".env.example": `# Copy to .env to override craft.yaml locally.
CRAFT_DEV=1
CRAFT_STRICT=0
CRAFT_LOG_LEVEL=debug
`,
			"templates/index.html": `<main>
  <h1>{{.ProjectName}}</h1>
  <ul>
    <li><a href="/pages/dialog">Dialog</a></li>
    <li><a href="/pages/menu">Menu</a></li>
  </ul>
</main>
`,
			"templates/dialog.html": `<Dialog open>
  <.Title>Delete file?</.Title>
  <.Body>This cannot be undone.</.Body>
  <.Actions>
    <Button>Cancel</Button>
    <Button variant="danger">Delete</Button>
  </.Actions>
</Dialog>
`,
			"templates/menu.html": `<Menu label="File">
  <.Item value="new">New</.Item>
  <.Item value="open">Open</.Item>
  <.Item value="quit" disabled>Quit</.Item>
</Menu>
`,
			"styles/site.css": `body { font-family: system-ui, sans-serif; margin: 2rem; }
.btn-danger { color: #b91c1c; }
`,
		},
	}
}
