package nav

import (
	"path"
	"strings"
)

// DirIcon is the tag shown for every directory entry.
const DirIcon = "▸"

// genericFileIcon is the fallback for extensions with no specific tag.
const genericFileIcon = "·"

// extIcons is the fixed extension→icon lookup table. Icon assignment is a
// pure function of the file extension; two files with the same extension
// always carry the same icon.
var extIcons = map[string]string{
	".md":       "≡",
	".markdown": "≡",
	".txt":      "≡",
	".json":     "⚙",
	".yml":      "⚙",
	".yaml":     "⚙",
	".link":     "↗",
	".png":      "⬡",
	".jpg":      "⬡",
	".jpeg":     "⬡",
	".gif":      "⬡",
	".svg":      "⬡",
	".webp":     "⬡",
	".sh":       "⚡",
	".bash":     "⚡",
	".js":       "⟨⟩",
	".jsx":      "⟨⟩",
	".ts":       "⟨⟩",
	".tsx":      "⟨⟩",
	".py":       "⟨⟩",
	".go":       "⟨⟩",
	".css":      "⟨⟩",
	".scss":     "⟨⟩",
	".sass":     "⟨⟩",
}

// FileIcon returns the icon tag for a file name based on its extension.
func FileIcon(name string) string {
	if icon, ok := extIcons[strings.ToLower(path.Ext(name))]; ok {
		return icon
	}
	return genericFileIcon
}
