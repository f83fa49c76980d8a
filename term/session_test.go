package term

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"termfolio/content"
	"termfolio/state"
	"termfolio/vfs"
)

func testTree() *vfs.Node {
	return vfs.Root(
		vfs.Dir("artist",
			vfs.File("bio.md"),
		),
		vfs.Dir("projects",
			vfs.Dir("web",
				vfs.File("README.md"),
				vfs.File("github.link"),
				vfs.File("launch.link"),
			),
			vfs.Dir("cli"),
		),
		vfs.File("skills.json"),
		vfs.File("notes.txt"),
	)
}

func testStore() *content.MapStore {
	return content.NewMapStore(map[string]string{
		"~/artist/bio.md":             "I make things.",
		"~/projects/web/README.md":    "# Web\n\nA project.",
		"~/projects/web/github.link":  "https://github.com/example/web",
		"~/projects/web/launch.link":  "https://example.com",
		"~/skills.json":               `{"languages":["go"]}`,
		"~/notes.txt":                 "plain notes",
	})
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(Config{Tree: testTree(), Store: testStore()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSession_HappyPath(t *testing.T) {
	s := newTestSession(t)

	res := s.Process("cd artist")
	if res.Err != nil {
		t.Fatalf("cd artist: %v", res.Err)
	}
	if res.NewDir != "~/artist" {
		t.Errorf("NewDir = %q", res.NewDir)
	}

	res = s.Process("cat bio.md")
	if res.Err != nil {
		t.Fatalf("cat bio.md: %v", res.Err)
	}
	if res.Output != "I make things." {
		t.Errorf("cat output = %q", res.Output)
	}

	res = s.Process("pwd")
	if res.Output != "~/artist" {
		t.Errorf("pwd = %q", res.Output)
	}
}

func TestSession_InvalidNavigationLeavesStateUnchanged(t *testing.T) {
	s := newTestSession(t)
	if res := s.Process("cd projects"); res.Err != nil {
		t.Fatalf("cd projects: %v", res.Err)
	}

	res := s.Process("cd nowhere")
	if res.Err == nil {
		t.Fatal("expected error for cd nowhere")
	}
	if got := res.Err.Error(); got != "cd: nowhere: no such file or directory" {
		t.Errorf("err = %q", got)
	}
	if s.CurrentPath() != "~/projects" {
		t.Errorf("path mutated to %q", s.CurrentPath())
	}

	if res := s.Process("ls"); res.Err != nil {
		t.Errorf("ls after failed cd: %v", res.Err)
	}
}

func TestSession_CdIntoFileIsNotADirectory(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("cd skills.json")
	if res.Err == nil || res.Err.Error() != "cd: skills.json: not a directory" {
		t.Errorf("err = %v", res.Err)
	}
}

func TestSession_CdWithoutArgumentGoesHome(t *testing.T) {
	s := newTestSession(t)
	s.Process("cd projects/web")
	res := s.Process("cd")
	if res.Err != nil || res.NewDir != "~" {
		t.Errorf("cd = %+v", res)
	}
}

func TestSession_UnknownCommandSuggests(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("lsit")
	if res.Err == nil {
		t.Fatal("expected error")
	}
	got := res.Err.Error()
	if !strings.HasPrefix(got, "Command not found: lsit") {
		t.Errorf("err = %q", got)
	}
	if !strings.Contains(got, "Did you mean: ls?") {
		t.Errorf("missing suggestion: %q", got)
	}
}

func TestSession_UnknownCommandNoSuggestion(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("zzz")
	if res.Err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(res.Err.Error(), "Did you mean") {
		t.Errorf("unexpected suggestion: %q", res.Err.Error())
	}
}

func TestSession_EmptyInputIsNoOp(t *testing.T) {
	s := newTestSession(t)
	for _, in := range []string{"", "   ", "\t"} {
		res := s.Process(in)
		if res.Err != nil || res.Output != "" {
			t.Errorf("Process(%q) = %+v", in, res)
		}
	}
}

func TestSession_AliasOutputMatchesCanonical(t *testing.T) {
	s := newTestSession(t)
	canonical := s.Process("ls")
	for _, alias := range []string{"ll", "la", "dir"} {
		got := s.Process(alias)
		if got.Output != canonical.Output {
			t.Errorf("%s output differs from ls:\n%q\nvs\n%q", alias, got.Output, canonical.Output)
		}
	}
}

func TestSession_AliasSplicesEmbeddedArgs(t *testing.T) {
	s := newTestSession(t)
	s.Process("cd projects/web")

	res := s.Process("..")
	if res.Err != nil || res.NewDir != "~/projects" {
		t.Errorf(".. = %+v", res)
	}

	res = s.Process("home")
	if res.Err != nil || res.NewDir != "~" {
		t.Errorf("home = %+v", res)
	}

	s.Process("cd artist")
	res = s.Process("type bio.md")
	if res.Err != nil || res.Output != "I make things." {
		t.Errorf("type = %+v", res)
	}
}

func TestSession_CaseInsensitiveCommandLookup(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("PWD")
	if res.Err != nil || res.Output != "~" {
		t.Errorf("PWD = %+v", res)
	}
}

func TestSession_CatLinkOpensExternally(t *testing.T) {
	s := newTestSession(t)
	s.Process("cd projects/web")
	res := s.Process("cat launch.link")
	if res.Err != nil {
		t.Fatalf("cat launch.link: %v", res.Err)
	}
	if res.OpenURL != "https://example.com" {
		t.Errorf("OpenURL = %q", res.OpenURL)
	}
	if res.Output == "" {
		t.Error("expected non-empty output")
	}
}

func TestSession_CatErrors(t *testing.T) {
	s := newTestSession(t)

	res := s.Process("cat")
	if res.Err == nil || res.Err.Error() != "usage: cat <file>" {
		t.Errorf("missing arg: %v", res.Err)
	}

	res = s.Process("cat ghost.md")
	if res.Err == nil || res.Err.Error() != "cat: ghost.md: No such file or directory" {
		t.Errorf("missing file: %v", res.Err)
	}

	// A directory is not readable as a file.
	res = s.Process("cat projects")
	if res.Err == nil || res.Err.Error() != "cat: projects: No such file or directory" {
		t.Errorf("directory: %v", res.Err)
	}
}

func TestSession_ViewRendersTypedResult(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("view skills.json")
	if res.Err != nil {
		t.Fatalf("view: %v", res.Err)
	}
	if res.Render == nil {
		t.Fatal("expected render result")
	}
	if !strings.Contains(res.Render.Pretty, "\"languages\"") {
		t.Errorf("pretty = %q", res.Render.Pretty)
	}
}

func TestSession_ViewAbsolutePath(t *testing.T) {
	s := newTestSession(t)
	s.Process("cd projects")
	res := s.Process("view ~/artist/bio.md")
	if res.Err != nil || res.Render == nil {
		t.Fatalf("view ~/artist/bio.md = %+v", res)
	}
}

func TestSession_LsFormatsColumns(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("ls")
	if res.Err != nil {
		t.Fatalf("ls: %v", res.Err)
	}
	lines := strings.Split(res.Output, "\n")
	// Four entries with three per row.
	if len(lines) != 2 {
		t.Errorf("line count = %d:\n%s", len(lines), res.Output)
	}
	if !strings.Contains(lines[0], "artist/") || !strings.Contains(lines[0], "projects/") {
		t.Errorf("directories not listed first: %q", lines[0])
	}
}

func TestSession_LsMissingPath(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("ls nope")
	want := "ls: cannot access 'nope': No such file or directory"
	if res.Err == nil || res.Err.Error() != want {
		t.Errorf("err = %v", res.Err)
	}
}

func TestSession_LsEmptyDirectory(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("ls projects/cli")
	if res.Err != nil {
		t.Fatalf("ls: %v", res.Err)
	}
	if res.Output != "" {
		t.Errorf("output = %q, want empty", res.Output)
	}
}

func TestSession_TreeRendersWholeFilesystem(t *testing.T) {
	s := newTestSession(t)
	s.Process("cd artist")
	res := s.Process("tree")
	if res.Err != nil {
		t.Fatalf("tree: %v", res.Err)
	}
	want := strings.Join([]string{
		"~",
		"├── ▸ artist/",
		"│   └── ≡ bio.md",
		"├── ▸ projects/",
		"│   ├── ▸ web/",
		"│   │   ├── ≡ README.md",
		"│   │   ├── ↗ github.link",
		"│   │   └── ↗ launch.link",
		"│   └── ▸ cli/",
		"├── ⚙ skills.json",
		"└── ≡ notes.txt",
	}, "\n")
	if res.Output != want {
		t.Errorf("tree output:\n%s\nwant:\n%s", res.Output, want)
	}
	if s.CurrentPath() != "~/artist" {
		t.Errorf("tree changed directory to %q", s.CurrentPath())
	}
}

func TestSession_ClearAndWhoami(t *testing.T) {
	s := newTestSession(t)
	if res := s.Process("clear"); !res.ClearScreen || res.Err != nil {
		t.Errorf("clear = %+v", res)
	}
	if res := s.Process("whoami"); res.Output != "guest" {
		t.Errorf("whoami = %q", res.Output)
	}
	if res := s.Process("cls"); !res.ClearScreen {
		t.Errorf("cls alias = %+v", res)
	}
}

func TestSession_HelpListsEveryCommand(t *testing.T) {
	s := newTestSession(t)
	res := s.Process("help")
	for _, name := range []string{"help", "pwd", "whoami", "clear", "reset", "ls", "cd", "cat", "view", "tree"} {
		if !strings.Contains(res.Output, name) {
			t.Errorf("help missing %q", name)
		}
	}
}

func TestSession_ResetClearsStateAndReturnsHome(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "session.json")
	st, err := state.NewStore(statePath)
	if err != nil {
		t.Fatalf("state.NewStore: %v", err)
	}
	s, err := NewSession(Config{Tree: testTree(), Store: testStore(), State: st})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.Process("cd projects/web")
	if st.Session().CurrentPath != "~/projects/web" {
		t.Fatalf("cd not persisted: %+v", st.Session())
	}

	res := s.Process("reset")
	if !res.ClearScreen || !res.ResetSession || res.NewDir != "~" {
		t.Errorf("reset = %+v", res)
	}
	if s.CurrentPath() != "~" {
		t.Errorf("path = %q", s.CurrentPath())
	}
	if got := st.Session(); got.CurrentPath != "" {
		t.Errorf("state not wiped: %+v", got)
	}
}

func TestSession_ResumesPersistedDirectory(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "session.json")
	st, err := state.NewStore(statePath)
	if err != nil {
		t.Fatalf("state.NewStore: %v", err)
	}
	if err := st.Save("~/artist", []string{"~", "~/artist"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := NewSession(Config{Tree: testTree(), Store: testStore(), State: st})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.CurrentPath() != "~/artist" {
		t.Errorf("resumed path = %q", s.CurrentPath())
	}
}

type panickyStore struct{}

func (panickyStore) Fetch(path string) ([]byte, error) {
	panic("boom")
}

func TestSession_ProcessRecoversFromPanic(t *testing.T) {
	s, err := NewSession(Config{Tree: testTree(), Store: panickyStore{}})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	res := s.Process("cat skills.json")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "internal error") {
		t.Errorf("err = %v", res.Err)
	}
	// The session stays usable afterwards.
	if res := s.Process("pwd"); res.Err != nil || res.Output != "~" {
		t.Errorf("pwd after panic = %+v", res)
	}
}

func TestCompletions_Commands(t *testing.T) {
	s := newTestSession(t)

	got := s.Completions("c")
	want := []string{"cat", "cd", "clear"}
	if !equalStrings(got, want) {
		t.Errorf("Completions(\"c\") = %v, want %v", got, want)
	}

	all := s.Completions("")
	if len(all) != 10 || !sort.StringsAreSorted(all) {
		t.Errorf("all commands = %v", all)
	}
}

func TestCompletions_Paths(t *testing.T) {
	s := newTestSession(t)

	got := s.Completions("cd pro")
	if !equalStrings(got, []string{"projects/"}) {
		t.Errorf("cd pro = %v", got)
	}

	got = s.Completions("cat projects/web/")
	want := []string{"projects/web/README.md", "projects/web/github.link", "projects/web/launch.link"}
	if !equalStrings(got, want) {
		t.Errorf("cat projects/web/ = %v, want %v", got, want)
	}

	// A trailing space completes against the whole directory, dirs first.
	got = s.Completions("ls ")
	want = []string{"artist/", "projects/", "notes.txt", "skills.json"}
	if !equalStrings(got, want) {
		t.Errorf("ls (empty) = %v, want %v", got, want)
	}
}

func TestCompletions_SoundAndSafe(t *testing.T) {
	s := newTestSession(t)

	// A non-file command offers no path completions.
	if got := s.Completions("pwd some"); len(got) != 0 {
		t.Errorf("pwd some = %v", got)
	}

	// A missing parent never throws, just returns nothing.
	if got := s.Completions("cd ghost/dir/pre"); len(got) != 0 {
		t.Errorf("missing parent = %v", got)
	}
	if got := s.Completions("cat zzz"); len(got) != 0 {
		t.Errorf("no match = %v", got)
	}

	// Every suggestion starts with the partial segment.
	for _, c := range s.Completions("cd pro") {
		if !strings.HasPrefix(c, "pro") {
			t.Errorf("completion %q does not extend partial", c)
		}
	}

	// Alias first tokens complete like their targets.
	if got := s.Completions("ll pro"); !equalStrings(got, []string{"projects/"}) {
		t.Errorf("ll pro = %v", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
