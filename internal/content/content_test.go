package content

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Projects) == 0 || len(c.Skills) == 0 || len(c.Stats) == 0 {
		t.Fatalf("catalog incomplete: %d projects, %d skill categories, %d stats",
			len(c.Projects), len(c.Skills), len(c.Stats))
	}
	if !strings.Contains(string(c.AboutHTML()), "<strong>useful and fun</strong>") {
		t.Fatalf("about not rendered as markdown: %s", c.AboutHTML())
	}
	if _, ok := c.DetailHTML("portfolio"); !ok {
		t.Fatal("missing portfolio details")
	}
}

func TestParseSanitizesMarkdown(t *testing.T) {
	c, err := Parse([]byte("about: |\n  hello <script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(c.AboutHTML()), "<script>") {
		t.Fatalf("script survived sanitising: %s", c.AboutHTML())
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	tests := map[string]string{
		"project slug": `
projects:
  - {slug: a, title: A}
  - {slug: a, title: B}
`,
		"skill name": `
skills:
  - title: One
    skills: [{name: Go, level: 90}]
  - title: Two
    skills: [{name: Go, level: 80}]
`,
		"orphan details": `
details:
  ghost: text
`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/content.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
