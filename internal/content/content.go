// Package content loads the static catalog shown on the site: about copy,
// projects, project stats and skills.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

//go:embed content.yaml
var defaultContent []byte

// Owner is the person the site is about.
type Owner struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Email    string `yaml:"email"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
}

// Catalog is everything the pages render. It is read-only after Load.
type Catalog struct {
	Owner    Owner               `yaml:"owner"`
	About    string              `yaml:"about"`
	Projects []projects.Entry    `yaml:"projects"`
	Stats    []projects.Stat     `yaml:"stats"`
	Skills   []skills.Category   `yaml:"skills"`
	Details  map[string]string   `yaml:"details"`
	Tech     map[string][]string `yaml:"tech_preferences"`

	aboutHTML   template.HTML
	detailsHTML map[string]template.HTML
}

// AboutHTML is the about copy rendered from markdown.
func (c *Catalog) AboutHTML() template.HTML { return c.aboutHTML }

// DetailHTML is the long-form markdown write-up for a project slug.
func (c *Catalog) DetailHTML(slug string) (template.HTML, bool) {
	h, ok := c.detailsHTML[slug]
	return h, ok
}

// Default parses the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultContent)
}

// Load reads a catalog file, falling back to the embedded one when path
// is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML content and pre-renders its markdown.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}

	r := newRenderer()
	var err error
	if c.aboutHTML, err = r.render(c.About); err != nil {
		return nil, fmt.Errorf("rendering about: %w", err)
	}
	c.detailsHTML = make(map[string]template.HTML, len(c.Details))
	for slug, md := range c.Details {
		if c.detailsHTML[slug], err = r.render(md); err != nil {
			return nil, fmt.Errorf("rendering details for %s: %w", slug, err)
		}
	}
	return &c, nil
}

func (c *Catalog) check() error {
	slugs := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.Slug == "" || p.Title == "" {
			return fmt.Errorf("project %d: slug and title are required", i)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("duplicate project slug %q", p.Slug)
		}
		slugs[p.Slug] = true
	}
	names := make(map[string]bool)
	for _, cat := range c.Skills {
		for _, s := range cat.Entries {
			if s.Name == "" {
				return fmt.Errorf("skill in %q has no name", cat.Title)
			}
			// Names key the comparison set.
			if names[s.Name] {
				return fmt.Errorf("duplicate skill name %q", s.Name)
			}
			names[s.Name] = true
		}
	}
	for slug := range c.Details {
		if !slugs[slug] {
			return fmt.Errorf("details for unknown project %q", slug)
		}
	}
	return nil
}

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newRenderer() *renderer {
	return &renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *renderer) render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}
