package term

import (
	"fmt"
	"sort"
	"strings"

	"termfolio/nav"
	"termfolio/vfs"
)

// Command is one registered built-in.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Run     func(s *Session, args []string) Result
}

// fileCommands are the commands whose arguments complete against
// directory contents.
var fileCommands = map[string]bool{
	"cd":   true,
	"cat":  true,
	"view": true,
	"ls":   true,
}

// Processor holds the command and alias tables. Both are fixed at
// construction; there is no runtime registration.
type Processor struct {
	commands map[string]Command
	aliases  map[string][]string

	// names is the command list in help order.
	names []string
}

// NewProcessor builds the processor with the built-in command set and the
// standard Unix-style aliases.
func NewProcessor() *Processor {
	p := &Processor{
		commands: make(map[string]Command),
		aliases: map[string][]string{
			"ll":   {"ls"},
			"la":   {"ls"},
			"dir":  {"ls"},
			"c":    {"clear"},
			"cls":  {"clear"},
			"?":    {"help"},
			"h":    {"help"},
			"..":   {"cd", ".."},
			"~":    {"cd", "~"},
			"home": {"cd", "~"},
			"type": {"cat"},
			"more": {"view"},
			"less": {"view"},
		},
	}
	for _, c := range builtins() {
		p.commands[c.Name] = c
		p.names = append(p.names, c.Name)
	}
	return p
}

// Process parses and dispatches one input line against the session.
func (p *Processor) Process(s *Session, input string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("command panic: %v (input %q)", r, input)
			res = Result{Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Result{}
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	// Alias expansion splices embedded arguments before the user's own.
	if expansion, ok := p.aliases[name]; ok {
		name = expansion[0]
		args = append(append([]string(nil), expansion[1:]...), args...)
	}

	cmd, ok := p.commands[name]
	if !ok {
		msg := fmt.Sprintf("Command not found: %s", fields[0])
		if hint := p.suggest(name); hint != "" {
			msg += fmt.Sprintf("\nDid you mean: %s?", hint)
		}
		return Result{Err: fmt.Errorf("%s", msg)}
	}
	return cmd.Run(s, args)
}

// suggest returns the first registered command sharing the input's first
// character. A crude heuristic, but cheap and often close enough.
func (p *Processor) suggest(name string) string {
	if name == "" {
		return ""
	}
	sorted := append([]string(nil), p.names...)
	sort.Strings(sorted)
	for _, candidate := range sorted {
		if candidate[0] == name[0] {
			return candidate
		}
	}
	return ""
}

// Completions returns sorted, de-duplicated suggestions for the partial
// input. It never fails: unknown commands and missing paths produce an
// empty slice.
func (p *Processor) Completions(s *Session, partial string) []string {
	trimmed := strings.TrimLeft(partial, " \t")
	fields := strings.Fields(trimmed)
	completingNew := strings.HasSuffix(partial, " ") || strings.HasSuffix(partial, "\t")

	// First token: complete command names.
	if len(fields) == 0 || (len(fields) == 1 && !completingNew) {
		prefix := ""
		if len(fields) == 1 {
			prefix = strings.ToLower(fields[0])
		}
		var out []string
		for name := range p.commands {
			if strings.HasPrefix(name, prefix) {
				out = append(out, name)
			}
		}
		sort.Strings(out)
		return out
	}

	name := strings.ToLower(fields[0])
	if expansion, ok := p.aliases[name]; ok {
		name = expansion[0]
	}
	if !fileCommands[name] {
		return nil
	}

	last := ""
	if !completingNew {
		last = fields[len(fields)-1]
	}
	return p.completePath(s, last)
}

// completePath completes the final path segment of last against the
// resolved parent directory's children.
func (p *Processor) completePath(s *Session, last string) []string {
	dirPart, segPrefix := "", last
	if idx := strings.LastIndex(last, "/"); idx >= 0 {
		dirPart, segPrefix = last[:idx+1], last[idx+1:]
	}

	parent := s.nav.CurrentPath()
	if dirPart != "" {
		parent = nav.ResolvePath(dirPart, s.nav.CurrentPath())
	}

	entries, err := s.nav.List(parent)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var dirs, files []string
	for _, e := range entries {
		if !strings.HasPrefix(strings.ToLower(e.Name), strings.ToLower(segPrefix)) {
			continue
		}
		candidate := dirPart + e.Name
		if e.Type == vfs.TypeDir {
			candidate += "/"
			if !seen[candidate] {
				seen[candidate] = true
				dirs = append(dirs, candidate)
			}
		} else if !seen[candidate] {
			seen[candidate] = true
			files = append(files, candidate)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(dirs, files...)
}
