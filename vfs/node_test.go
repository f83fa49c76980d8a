package vfs

import (
	"testing"
)

func testTree() *Node {
	return Root(
		File("bio.md"),
		Dir("artist",
			File("bio.md"),
			File("statement.md"),
		),
		Dir("projects",
			Dir("web",
				Dir("portfolio",
					File("README.md"),
					File("tech-stack.json"),
					File("launch.link"),
				),
			),
			Dir("cli"),
		),
	)
}

func TestRoot_AssignsCanonicalPaths(t *testing.T) {
	tree := testTree()

	cases := map[string]string{
		"~":                              RootPath,
		"~/bio.md":                       "bio.md",
		"~/artist/statement.md":          "statement.md",
		"~/projects/web/portfolio":       "portfolio",
		"~/projects/web/portfolio/README.md": "README.md",
	}
	for path, name := range cases {
		node, ok := FindByPath(tree, path)
		if !ok {
			t.Fatalf("FindByPath(%q) not found", path)
		}
		if node.Name != name {
			t.Errorf("FindByPath(%q).Name = %q, want %q", path, node.Name, name)
		}
		if node.Path != path {
			t.Errorf("FindByPath(%q).Path = %q, want %q", path, node.Path, path)
		}
	}
}

func TestFindByPath_MissingSegmentReturnsNotFound(t *testing.T) {
	tree := testTree()

	for _, path := range []string{
		"~/nonexistent",
		"~/artist/missing.md",
		"~/bio.md/child",       // descending through a file
		"~/projects/web/Portfolio", // case-sensitive
	} {
		if node, ok := FindByPath(tree, path); ok {
			t.Errorf("FindByPath(%q) = %v, want not-found", path, node.Path)
		}
	}
}

func TestFindByPath_RootForms(t *testing.T) {
	tree := testTree()

	for _, path := range []string{"~", "/", "~/", ""} {
		node, ok := FindByPath(tree, path)
		if !ok || node != tree {
			t.Errorf("FindByPath(%q) should resolve to root", path)
		}
	}
}

func TestSplitPath(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"~", nil},
		{"~/", nil},
		{"/", nil},
		{"~/a/b", []string{"a", "b"}},
		{"/a//b/", []string{"a", "b"}},
		{"a/b", []string{"a", "b"}},
	}
	for _, c := range cases {
		got := SplitPath(c.in)
		if len(got) != len(c.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("SplitPath(%q) = %v, want %v", c.in, got, c.want)
				break
			}
		}
	}
}

func TestValidate_AcceptsWellFormedTree(t *testing.T) {
	if err := Validate(testTree()); err != nil {
		t.Fatalf("Validate failed on well-formed tree: %v", err)
	}
}

func TestValidate_RejectsDuplicateSiblings(t *testing.T) {
	tree := Root(File("a.md"), File("a.md"))
	if err := Validate(tree); err == nil {
		t.Fatal("Validate accepted duplicate siblings")
	}
}

func TestValidate_RejectsFileWithChildren(t *testing.T) {
	bad := File("a.md")
	bad.Children = []*Node{File("b.md")}
	tree := Root(bad)
	// assignPaths skipped the synthetic child; fix it up so only the
	// file-with-children invariant is violated.
	bad.Children[0].Path = bad.Path + Separator + "b.md"
	if err := Validate(tree); err == nil {
		t.Fatal("Validate accepted a file node with children")
	}
}

func TestValidate_RejectsSeparatorInName(t *testing.T) {
	tree := Root(File("a/b.md"))
	if err := Validate(tree); err == nil {
		t.Fatal("Validate accepted a name containing the separator")
	}
}

func TestWalk_DepthFirstSourceOrder(t *testing.T) {
	tree := testTree()

	var visited []string
	Walk(tree, func(n *Node, depth int) bool {
		visited = append(visited, n.Path)
		return true
	})

	want := []string{
		"~",
		"~/bio.md",
		"~/artist",
		"~/artist/bio.md",
		"~/artist/statement.md",
		"~/projects",
		"~/projects/web",
		"~/projects/web/portfolio",
		"~/projects/web/portfolio/README.md",
		"~/projects/web/portfolio/tech-stack.json",
		"~/projects/web/portfolio/launch.link",
		"~/projects/cli",
	}
	if len(visited) != len(want) {
		t.Fatalf("Walk visited %d nodes, want %d: %v", len(visited), len(want), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Walk order[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestWalk_PruneStopsDescent(t *testing.T) {
	tree := testTree()

	var visited []string
	Walk(tree, func(n *Node, depth int) bool {
		visited = append(visited, n.Path)
		return n.Path != "~/projects"
	})

	for _, p := range visited {
		if p == "~/projects/web" {
			t.Fatal("Walk descended into a pruned subtree")
		}
	}
}

func TestChild_NilAndFileReceivers(t *testing.T) {
	var nilNode *Node
	if nilNode.Child("x") != nil {
		t.Error("Child on nil node should return nil")
	}
	if File("a.md").Child("x") != nil {
		t.Error("Child on file node should return nil")
	}
}
