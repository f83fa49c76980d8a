package term

import (
	"fmt"
	"strings"

	"termfolio/nav"
	"termfolio/vfs"
)

func builtins() []Command {
	return []Command{
		{
			Name:    "help",
			Usage:   "help",
			Summary: "list available commands",
			Run:     cmdHelp,
		},
		{
			Name:    "pwd",
			Usage:   "pwd",
			Summary: "print the current directory",
			Run:     cmdPwd,
		},
		{
			Name:    "whoami",
			Usage:   "whoami",
			Summary: "print the current user",
			Run:     cmdWhoami,
		},
		{
			Name:    "clear",
			Usage:   "clear",
			Summary: "clear the screen",
			Run:     cmdClear,
		},
		{
			Name:    "reset",
			Usage:   "reset",
			Summary: "clear saved session state and return home",
			Run:     cmdReset,
		},
		{
			Name:    "ls",
			Usage:   "ls [path]",
			Summary: "list directory contents",
			Run:     cmdLs,
		},
		{
			Name:    "cd",
			Usage:   "cd [path]",
			Summary: "change directory",
			Run:     cmdCd,
		},
		{
			Name:    "cat",
			Usage:   "cat <file>",
			Summary: "print file contents",
			Run:     cmdCat,
		},
		{
			Name:    "view",
			Usage:   "view <file>",
			Summary: "render a file with formatting",
			Run:     cmdView,
		},
		{
			Name:    "tree",
			Usage:   "tree",
			Summary: "show the full directory tree",
			Run:     cmdTree,
		},
	}
}

func cmdHelp(s *Session, args []string) Result {
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, name := range s.proc.names {
		c := s.proc.commands[name]
		fmt.Fprintf(&b, "  %-14s %s\n", c.Usage, c.Summary)
	}
	b.WriteString("\nAliases: ll, la, dir (ls); c, cls (clear); ?, h (help); type (cat); more, less (view); home, ~ (cd ~)")
	return Result{Output: b.String()}
}

func cmdPwd(s *Session, args []string) Result {
	return Result{Output: s.nav.CurrentPath()}
}

func cmdWhoami(s *Session, args []string) Result {
	return Result{Output: s.user}
}

func cmdClear(s *Session, args []string) Result {
	return Result{ClearScreen: true}
}

func cmdReset(s *Session, args []string) Result {
	if s.state != nil {
		if err := s.state.Reset(); err != nil {
			s.logger.Printf("session reset failed: %v", err)
		}
	}
	s.nav.Reset()
	return Result{
		ClearScreen:  true,
		ResetSession: true,
		NewDir:       vfs.RootPath,
	}
}

func cmdLs(s *Session, args []string) Result {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	entries, err := s.nav.List(target)
	if err != nil {
		return Result{Err: fmt.Errorf("ls: cannot access '%s': No such file or directory", target)}
	}
	return Result{Output: formatColumns(entries)}
}

func cmdCd(s *Session, args []string) Result {
	target := vfs.RootPath
	if len(args) > 0 {
		target = args[0]
	}
	newPath, err := s.nav.Navigate(target)
	if err != nil {
		return Result{Err: fmt.Errorf("cd: %s: %w", target, err)}
	}
	s.persist()
	return Result{NewDir: newPath}
}

// resolveFile resolves a file argument and loads its content. A missing
// node, a directory, or a failed load all collapse to not-found; verb is
// the command name used in the error message.
func resolveFile(s *Session, verb, arg string) (*vfs.Node, string, error) {
	path := nav.ResolvePath(arg, s.nav.CurrentPath())
	node, ok := vfs.FindByPath(s.nav.Tree(), path)
	if !ok || node.IsDir() {
		return nil, "", fmt.Errorf("%s: %s: No such file or directory", verb, arg)
	}
	data, err := s.store.Fetch(node.Path)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %s: No such file or directory", verb, arg)
	}
	return node, string(data), nil
}

func cmdCat(s *Session, args []string) Result {
	if len(args) != 1 {
		return Result{Err: fmt.Errorf("usage: cat <file>")}
	}
	node, body, err := resolveFile(s, "cat", args[0])
	if err != nil {
		return Result{Err: err}
	}
	if strings.HasSuffix(strings.ToLower(node.Name), ".link") {
		res, rerr := s.renderer.Render(node.Name, body)
		if rerr != nil {
			return Result{Err: rerr}
		}
		return Result{
			Output:  fmt.Sprintf("Opening %s", res.URL),
			OpenURL: res.URL,
		}
	}
	return Result{Output: body}
}

func cmdView(s *Session, args []string) Result {
	if len(args) != 1 {
		return Result{Err: fmt.Errorf("usage: view <file>")}
	}
	node, body, err := resolveFile(s, "view", args[0])
	if err != nil {
		return Result{Err: err}
	}
	res, rerr := s.renderer.Render(node.Name, body)
	if rerr != nil {
		return Result{Err: rerr}
	}
	return Result{Render: &res}
}

func cmdTree(s *Session, args []string) Result {
	return Result{Output: formatTree(s.nav.Tree())}
}
