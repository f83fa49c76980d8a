package term

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"termfolio/nav"
	"termfolio/vfs"
)

// lsColumns is the fixed number of entries per row in ls output.
const lsColumns = 3

// formatColumns lays entries out icon-first in fixed-width columns,
// lsColumns per row. Cells are padded by terminal display width, not byte
// length, so multi-rune icons keep the columns aligned; no row carries
// trailing spaces. An empty directory produces empty output.
func formatColumns(entries []nav.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Icon + " " + e.Display); w > width {
			width = w
		}
	}
	width += 2

	var rows []string
	var row strings.Builder
	for i, e := range entries {
		cell := e.Icon + " " + e.Display
		row.WriteString(cell)
		if pad := width - runewidth.StringWidth(cell); pad > 0 {
			row.WriteString(strings.Repeat(" ", pad))
		}
		if (i+1)%lsColumns == 0 || i == len(entries)-1 {
			rows = append(rows, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	return strings.Join(rows, "\n")
}

// formatTree renders the whole tree with box-drawing connectors. Children
// keep the source order the tree encodes.
func formatTree(root *vfs.Node) string {
	var b strings.Builder
	b.WriteString(vfs.RootPath + "\n")
	writeBranch(&b, root, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeBranch(b *strings.Builder, dir *vfs.Node, prefix string) {
	for i, child := range dir.Children {
		last := i == len(dir.Children)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix + connector + treeLabel(child) + "\n")
		if child.IsDir() {
			writeBranch(b, child, childPrefix)
		}
	}
}

func treeLabel(n *vfs.Node) string {
	if n.IsDir() {
		return nav.DirIcon + " " + n.Name + "/"
	}
	return nav.FileIcon(n.Name) + " " + n.Name
}
