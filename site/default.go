package site

import (
	"fmt"
	"path"

	"termfolio/authoring"
)

// Default returns the built-in portfolio manifest. Project directories
// are generated from structured records so their file sets stay in the
// standard shape.
func Default() ([]Entry, error) {
	entries := []Entry{
		{Path: "bio.md", Body: defaultBio},
		{Path: "about/background.md", Body: defaultBackground},
		{Path: "about/interests.md", Body: defaultInterests},
		{Path: "skills/skills.json", Body: defaultSkills},
		{Path: "experience/timeline.md", Body: defaultTimeline},
		{Path: "contact/email.link", Body: "mailto:hello@example.dev\n"},
		{Path: "contact/github.link", Body: "https://github.com/example\n"},
	}

	for _, p := range defaultProjects() {
		files, err := p.Files()
		if err != nil {
			return nil, fmt.Errorf("generate project %s: %w", p.ID, err)
		}
		for _, f := range files {
			entries = append(entries, Entry{
				Path: path.Join(p.Dir(), f.Name),
				Body: f.Body,
			})
		}
	}
	return entries, nil
}

func defaultProjects() []authoring.Project {
	return []authoring.Project{
		{
			ID:          "termfolio",
			Name:        "Termfolio",
			Description: "This site: a portfolio browsed through a simulated terminal.",
			TechStack:   []string{"Go", "Bubble Tea", "Glamour"},
			Category:    "web",
			Status:      "active",
			Features:    []string{"Tab completion", "Command aliases", "Markdown rendering"},
			LiveURL:     "https://example.dev",
			GithubURL:   "https://github.com/example/termfolio",
		},
		{
			ID:          "shipit",
			Name:        "Shipit",
			Description: "A small deploy helper for static sites.",
			TechStack:   []string{"Go"},
			Category:    "cli",
			Status:      "maintained",
			Features:    []string{"Atomic uploads", "Rollback"},
			GithubURL:   "https://github.com/example/shipit",
		},
	}
}

const defaultBio = `# Hi, I'm a developer.

I build small, sharp tools and the occasional odd website.

Type ` + "`help`" + ` to see what you can do here, or ` + "`tree`" + ` to
see everything at once.
`

const defaultBackground = `# Background

Systems programmer by trade. Most of my work lives on servers you will
never see.
`

const defaultInterests = `# Interests

- Terminals and text interfaces
- Filesystems
- Coffee
`

const defaultSkills = `{
  "languages": ["Go", "Python", "TypeScript"],
  "tools": ["Linux", "Docker", "PostgreSQL"],
  "interests": ["distributed systems", "developer tooling"]
}
`

const defaultTimeline = `# Experience

## Now

Building developer tools.

## Before

Infrastructure work at a series of companies with increasingly silly
names.
`
