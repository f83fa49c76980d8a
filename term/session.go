// Package term is the command layer of the terminal portfolio: it parses
// input lines, dispatches built-in commands and aliases against the
// navigation engine and content loader, and serves tab-completion queries.
package term

import (
	"fmt"
	"log"

	"termfolio/content"
	"termfolio/nav"
	"termfolio/render"
	"termfolio/state"
	"termfolio/vfs"
)

// defaultUser is reported by whoami when no identity is configured.
const defaultUser = "guest"

// Result is the typed outcome of one processed input line. Output and
// Render carry what to display; the remaining fields are side-effect
// signals for the hosting UI.
type Result struct {
	Output string
	Render *render.Result

	// OpenURL asks the host to open the URL externally.
	OpenURL string

	// NewDir is the current path after a successful directory change.
	NewDir string

	ClearScreen  bool
	ResetSession bool

	Err error
}

// Config wires a Session's collaborators. Tree and Store are required;
// State is optional and enables session resume and the reset wipe.
type Config struct {
	Tree  *vfs.Node
	Store content.Store
	State *state.Store

	// StartDir overrides the persisted session's directory when set.
	StartDir string

	User   string
	Logger *log.Logger
}

// Session owns one visitor's terminal state. It is not safe for
// concurrent use; the hosting UI serializes input lines.
type Session struct {
	nav      *nav.Navigator
	store    content.Store
	renderer *render.Renderer
	state    *state.Store
	proc     *Processor
	user     string
	logger   *log.Logger
}

// NewSession validates the tree and builds a session, resuming the
// persisted directory when available.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Tree == nil {
		return nil, fmt.Errorf("session requires a filesystem tree")
	}
	if err := vfs.Validate(cfg.Tree); err != nil {
		return nil, fmt.Errorf("invalid filesystem tree: %w", err)
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session requires a content store")
	}

	startDir := cfg.StartDir
	if startDir == "" && cfg.State != nil {
		startDir = cfg.State.Session().CurrentPath
	}

	user := cfg.User
	if user == "" {
		user = defaultUser
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		nav:      nav.New(cfg.Tree, startDir),
		store:    cfg.Store,
		renderer: render.New(),
		state:    cfg.State,
		user:     user,
		logger:   logger,
	}
	s.proc = NewProcessor()
	return s, nil
}

// CurrentPath returns the session's current directory.
func (s *Session) CurrentPath() string {
	return s.nav.CurrentPath()
}

// Process dispatches one input line. It never panics: a command that
// blows up is reported as an internal-error result.
func (s *Session) Process(input string) Result {
	return s.proc.Process(s, input)
}

// Completions serves a tab-completion query for the partial input.
func (s *Session) Completions(partial string) []string {
	return s.proc.Completions(s, partial)
}

// Rebase swaps in a freshly built tree, keeping the current directory
// when it still exists. Used after a content refresh.
func (s *Session) Rebase(tree *vfs.Node) error {
	if err := vfs.Validate(tree); err != nil {
		return fmt.Errorf("invalid filesystem tree: %w", err)
	}
	s.nav.Rebase(tree)
	return nil
}

// persist saves the navigation snapshot. Failures are logged and
// swallowed; losing a saved session is never a hard error.
func (s *Session) persist() {
	if s.state == nil {
		return
	}
	if err := s.state.Save(s.nav.CurrentPath(), s.nav.History()); err != nil {
		s.logger.Printf("session save failed: %v", err)
	}
}
