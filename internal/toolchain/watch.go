package toolchain

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
	"github.com/jmylchreest/themesmith/internal/watch"
)

// WatchSources recompiles themes when their .scss sources change until ctx
// is cancelled. A change inside a theme folder rebuilds that theme; any
// other change (the components folder) rebuilds every theme. The userstyle
// is recomposed after each rebuild when a selection is saved.
func (t *Toolchain) WatchSources(ctx context.Context) error {
	delay, err := t.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	session := watch.NewSession(watch.Options{
		Delay:  delay,
		Filter: watch.ExtFilter(".scss"),
		Build:  t.rebuildSources,
		Logger: t.logger,
	})

	src, err := watch.NewFSSource(session.Notify, t.logger)
	if err != nil {
		return err
	}
	defer src.Stop()

	if err := src.Add(t.layout.ThemesDir); err != nil {
		return asMissingRoot(t.layout.ThemesDir, err)
	}
	if dir := t.cfg.ComponentsDir(); dir != "" && isDir(dir) {
		if err := src.Add(dir); err != nil {
			return err
		}
	}
	if err := src.Start(ctx); err != nil {
		return err
	}

	t.out.Infof(console.IconWatch, "Watching for changes...")
	t.out.Blank()
	return session.Run(ctx)
}

// affectedThemes maps changed paths to theme folders. all is true when a
// path lies outside every theme folder.
func (t *Toolchain) affectedThemes(changed []string) (names []string, all bool) {
	seen := make(map[string]bool)
	for _, p := range changed {
		name, ok := t.layout.ThemeOf(p)
		if !ok {
			all = true
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, all
}

func (t *Toolchain) rebuildSources(ctx context.Context, changed []string) error {
	for _, p := range changed {
		t.out.Blank()
		t.out.Infof(console.IconChange, "Change detected in %s", t.relative(p))
	}

	names, all := t.affectedThemes(changed)
	if all {
		t.out.Infof(console.IconRebuild, "Recompiling all themes...")
		if _, err := t.CompileAll(ctx); err != nil {
			return err
		}
	} else if _, err := t.CompileThemes(ctx, names); err != nil {
		return err
	}

	sel, err := t.store.Load()
	if errors.Is(err, selection.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !all && !includesAny(sel, names) {
		return nil
	}
	_, err = t.Recompose(ctx)
	return err
}

func includesAny(sel *selection.Selection, names []string) bool {
	for _, n := range names {
		if sel.Includes(n) {
			return true
		}
	}
	return false
}

// relative shortens a path for display when it is inside the project.
func (t *Toolchain) relative(path string) string {
	base := t.cfg.BaseDir()
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// WatchCompiled recomposes the userstyle whenever one of the selected
// compiled themes changes, until ctx is cancelled. Nothing is compiled and
// the selection is not changed.
func (t *Toolchain) WatchCompiled(ctx context.Context) error {
	sel, err := t.store.Load()
	if err != nil {
		if errors.Is(err, selection.ErrNotFound) {
			return ErrMissingSelection
		}
		return err
	}

	compiled, err := theme.DiscoverCompiled(t.layout.CompiledDir)
	if err != nil {
		return err
	}
	if err := sel.Resolve(compiled); err != nil {
		return err
	}
	if _, err := t.Compose(sel); err != nil {
		return err
	}

	delay, err := t.cfg.DebounceDuration()
	if err != nil {
		return err
	}
	paths := []string{sel.Light.Path, sel.Dark.Path}

	session := watch.NewSession(watch.Options{
		Delay:  delay,
		Filter: watch.And(watch.ExtFilter(".css"), watch.PathsFilter(paths...)),
		Build: func(ctx context.Context, changed []string) error {
			for _, p := range changed {
				t.out.Infof(console.IconChange, "Change detected in %s", t.relative(p))
			}
			_, err := t.Recompose(ctx)
			return err
		},
		Logger: t.logger,
	})

	if t.cfg.Watch.Poll {
		interval, err := t.cfg.PollDuration()
		if err != nil {
			return err
		}
		src := watch.NewPollSource(paths, interval, session.Notify, t.logger)
		if err := src.Start(ctx); err != nil {
			return err
		}
		defer src.Stop()
	} else {
		src, err := watch.NewFSSource(session.Notify, t.logger)
		if err != nil {
			return err
		}
		defer src.Stop()
		if err := src.Add(t.layout.CompiledDir); err != nil {
			return asMissingRoot(t.layout.CompiledDir, err)
		}
		if err := src.Start(ctx); err != nil {
			return err
		}
	}

	t.out.Infof(console.IconWatch, "Watching %s for changes...", console.List(sel.Names()))
	return session.Run(ctx)
}
