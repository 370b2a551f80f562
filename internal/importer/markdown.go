package importer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"tasky/internal/sheet"
)

// Imported is the result of parsing a markdown checklist file.
type Imported struct {
	Title       string
	Description string
	Items       []Item
}

// Item is one parsed task-list entry.
type Item struct {
	Text      string
	Completed bool
}

var taskListMarkdown = goldmark.New(goldmark.WithExtensions(extension.TaskList))

// ParseFile reads a markdown file with optional YAML frontmatter
// (title, description) and GFM task-list items and returns the pieces
// needed to build a sheet.
func ParseFile(path string) (Imported, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Imported{}, fmt.Errorf("%w: read %s: %v", sheet.ErrIO, path, err)
	}
	return Parse(content)
}

// Parse parses markdown content. A missing frontmatter title falls back
// to the first H1 heading.
func Parse(content []byte) (Imported, error) {
	title, description, body := parseFrontmatter(content)

	doc := taskListMarkdown.Parser().Parse(text.NewReader(body))

	var imp Imported
	imp.Title = title
	imp.Description = description

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if imp.Title == "" && n.Kind() == ast.KindHeading {
			heading := n.(*ast.Heading)
			if heading.Level == 1 {
				imp.Title = string(n.Text(body))
				return ast.WalkContinue, nil
			}
		}

		if n.Kind() == east.KindTaskCheckBox {
			checkbox := n.(*east.TaskCheckBox)
			itemText := strings.TrimSpace(string(n.Parent().Text(body)))
			if itemText == "" {
				return ast.WalkContinue, nil
			}
			imp.Items = append(imp.Items, Item{
				Text:      itemText,
				Completed: checkbox.IsChecked,
			})
		}
		return ast.WalkContinue, nil
	})

	if len(imp.Items) == 0 {
		return Imported{}, fmt.Errorf("%w: no task-list items found", sheet.ErrInvalidInput)
	}
	return imp, nil
}

// parseFrontmatter extracts YAML frontmatter from markdown content.
func parseFrontmatter(content []byte) (string, string, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return "", "", content
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return "", "", content
	}

	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	var frontmatter struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(frontmatterBytes, &frontmatter); err != nil {
		return "", "", content
	}

	body := bytes.Join(lines[frontmatterEnd+1:], []byte("\n"))
	return frontmatter.Title, frontmatter.Description, body
}
