// Package authoring generates the per-project content files the site tree
// is built from. A structured project record maps deterministically to a
// README.md, tech-stack.json, and link file set under
// projects/<category>/<id>/.
package authoring

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Project is the structured record behind one portfolio project.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Features    []string `json:"features,omitempty"`
	Challenges  []string `json:"challenges,omitempty"`
	Outcomes    []string `json:"outcomes,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
}

// File is one generated content file, named relative to the project dir.
type File struct {
	Name string
	Body string
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Validate checks the fields the generator depends on.
func (p Project) Validate() error {
	if !idPattern.MatchString(p.ID) {
		return fmt.Errorf("project id %q must be lowercase alphanumeric with dashes", p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("project %s: name is required", p.ID)
	}
	if !idPattern.MatchString(p.Category) {
		return fmt.Errorf("project %s: category %q must be lowercase alphanumeric with dashes", p.ID, p.Category)
	}
	return nil
}

// Dir returns the project's directory relative to the projects root.
func (p Project) Dir() string {
	return path.Join("projects", p.Category, p.ID)
}

// Files generates the project's file set. Output is deterministic: the
// same record always produces byte-identical files. Link files are only
// emitted when the corresponding URL is present.
func (p Project) Files() ([]File, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	techStack, err := json.MarshalIndent(struct {
		Project   string   `json:"project"`
		TechStack []string `json:"techStack"`
	}{Project: p.ID, TechStack: p.TechStack}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("project %s: marshal tech stack: %w", p.ID, err)
	}

	files := []File{
		{Name: "README.md", Body: p.readme()},
		{Name: "tech-stack.json", Body: string(techStack) + "\n"},
	}
	if p.LiveURL != "" {
		files = append(files, File{Name: "launch.link", Body: p.LiveURL + "\n"})
	}
	if p.GithubURL != "" {
		files = append(files, File{Name: "github.link", Body: p.GithubURL + "\n"})
	}
	return files, nil
}

func (p Project) readme() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	if p.Status != "" {
		fmt.Fprintf(&b, "**Status:** %s\n\n", p.Status)
	}
	writeSection(&b, "Tech Stack", p.TechStack)
	writeSection(&b, "Features", p.Features)
	writeSection(&b, "Challenges", p.Challenges)
	writeSection(&b, "Outcomes", p.Outcomes)
	if p.LiveURL != "" || p.GithubURL != "" {
		b.WriteString("## Links\n\n")
		if p.LiveURL != "" {
			fmt.Fprintf(&b, "- [Live Site](%s)\n", p.LiveURL)
		}
		if p.GithubURL != "" {
			fmt.Fprintf(&b, "- [GitHub](%s)\n", p.GithubURL)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
