package theme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrThemeExists is returned when a scaffold target already exists.
	ErrThemeExists = errors.New("theme already exists")

	// ErrInvalidName is returned for names that are empty after normalisation.
	ErrInvalidName = errors.New("invalid theme name")
)

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDashRegex = regexp.MustCompile(`^-+|-+$`)
)

// ToKebabCase normalises a display name: "Ocean Blue!" becomes "ocean-blue".
func ToKebabCase(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "-")
	return edgeDashRegex.ReplaceAllString(s, "")
}

// RenameThemeClass renames .theme--<mode>--<from> class tokens to use to.
func RenameThemeClass(css, from, to string) string {
	re := regexp.MustCompile(`\.theme--(light|dark)--` + regexp.QuoteMeta(from) + `\b`)
	return re.ReplaceAllString(css, ".theme--${1}--"+to)
}

// ScaffoldResult describes the folders created by Scaffold.
type ScaffoldResult struct {
	Name        string             // Kebab-case base name
	Dirs        map[Variant]string // Created folder per variant
	FromStarter bool               // True when the embedded starter was used
}

// Existing returns the light/dark folder names for base that already exist in root.
func Existing(root, base string) []string {
	var found []string
	for _, v := range Variants {
		name := v.Prefix() + base
		if info, err := os.Stat(filepath.Join(root, name)); err == nil && info.IsDir() {
			found = append(found, name)
		}
	}
	return found
}

// Scaffold creates light-<name> and dark-<name> in root by copying
// light-<template> and dark-<template>, then renames the theme class in
// each entry file. When the template pair is absent the embedded starter
// is written instead. On failure the folders created so far are removed.
func Scaffold(root, name, template, entry string) (_ *ScaffoldResult, err error) {
	base := ToKebabCase(name)
	if base == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if existing := Existing(root, base); len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrThemeExists, strings.Join(existing, ", "))
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	useStarter := len(Existing(root, template)) < len(Variants)
	result := &ScaffoldResult{
		Name:        base,
		Dirs:        make(map[Variant]string, len(Variants)),
		FromStarter: useStarter,
	}

	defer func() {
		if err == nil {
			return
		}
		for _, dir := range result.Dirs {
			os.RemoveAll(dir)
		}
	}()

	for _, v := range Variants {
		dest := filepath.Join(root, v.Prefix()+base)
		result.Dirs[v] = dest
		if useStarter {
			if err := writeStarter(dest, v, entry, base); err != nil {
				return nil, fmt.Errorf("write starter %s: %w", dest, err)
			}
		} else {
			src := filepath.Join(root, v.Prefix()+template)
			if err := CopyDir(src, dest); err != nil {
				return nil, fmt.Errorf("copy %s: %w", src, err)
			}
			if err := renameInFile(filepath.Join(dest, entry), template, base); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func renameInFile(path, from, to string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Template without an entry file: nothing to rename.
			return nil
		}
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenameThemeClass(string(data), from, to)), info.Mode().Perm())
}

// CopyDir copies src into dst recursively, creating dst as needed.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
