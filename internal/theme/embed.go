package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// StarterFS contains the bundled light/dark starter pair.
// Class names inside use StarterName as the theme name.
//
//go:embed all:starter
var StarterFS embed.FS

// StarterName is the theme name used by the embedded starter classes.
const StarterName = "starter"

// starterEntry is the entry file inside the embedded starter.
const starterEntry = "_main.scss"

// ListStarterFiles returns the relative file names bundled for a variant.
func ListStarterFiles(v Variant) ([]string, error) {
	root := path.Join("starter", string(v))
	var files []string
	err := fs.WalkDir(StarterFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files, err
}

// writeStarter writes the embedded starter for v into dest. The starter's
// entry file is written as entry with its theme class renamed to name.
func writeStarter(dest string, v Variant, entry, name string) error {
	files, err := ListStarterFiles(v)
	if err != nil {
		return fmt.Errorf("list starter files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no starter files bundled for %s", v)
	}

	for _, rel := range files {
		data, err := StarterFS.ReadFile(path.Join("starter", string(v), rel))
		if err != nil {
			return err
		}
		if rel == starterEntry {
			data = []byte(RenameThemeClass(string(data), StarterName, name))
			rel = entry
		}

		target := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
