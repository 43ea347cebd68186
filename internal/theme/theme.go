package theme

import (
	"path/filepath"
	"strings"
)

// Variant is the light/dark mode a theme targets.
type Variant string

const (
	VariantLight   Variant = "light"
	VariantDark    Variant = "dark"
	VariantUnknown Variant = ""
)

// Variants lists the modes in composition order.
var Variants = []Variant{VariantLight, VariantDark}

// String returns the variant name, or "unknown".
func (v Variant) String() string {
	if v == VariantUnknown {
		return "unknown"
	}
	return string(v)
}

// Prefix returns the folder-name prefix that marks the variant.
func (v Variant) Prefix() string {
	if v == VariantUnknown {
		return ""
	}
	return string(v) + "-"
}

// VariantOf infers the variant from a theme name prefix ("light-", "dark-").
func VariantOf(name string) Variant {
	for _, v := range Variants {
		if strings.HasPrefix(name, v.Prefix()) {
			return v
		}
	}
	return VariantUnknown
}

// BaseName strips the variant prefix: "light-ocean" becomes "ocean".
func BaseName(name string) string {
	if v := VariantOf(name); v != VariantUnknown {
		return strings.TrimPrefix(name, v.Prefix())
	}
	return name
}

// Theme is one theme source folder and its compiled output.
type Theme struct {
	Name       string  // Folder name, e.g. "light-ocean"
	Variant    Variant // Inferred from the name prefix
	SourceDir  string  // <themes>/<name>
	EntryPath  string  // <themes>/<name>/<entry>
	OutputPath string  // <compiled>/<name>.css
}

// Layout describes where theme sources and compiled files live.
type Layout struct {
	ThemesDir   string
	CompiledDir string
	EntryFile   string
}

// Theme resolves the paths of a theme by name.
func (l Layout) Theme(name string) Theme {
	src := filepath.Join(l.ThemesDir, name)
	return Theme{
		Name:       name,
		Variant:    VariantOf(name),
		SourceDir:  src,
		EntryPath:  filepath.Join(src, l.EntryFile),
		OutputPath: CompiledPath(l.CompiledDir, name),
	}
}

// ThemeOf maps a path inside the themes directory to the theme folder that
// contains it. Returns false for paths outside any theme folder.
func (l Layout) ThemeOf(path string) (string, bool) {
	rel, err := filepath.Rel(l.ThemesDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	first, rest, _ := strings.Cut(filepath.ToSlash(rel), "/")
	if rest == "" {
		// A file directly under the themes root belongs to no theme.
		return "", false
	}
	return first, true
}

// CompiledPath returns the compiled CSS path for a theme name.
func CompiledPath(compiledDir, name string) string {
	return filepath.Join(compiledDir, name+".css")
}
