package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/provider"
)

// scannedExtensions are the file types find looks at inside directories.
var scannedExtensions = map[string]bool{
	".css": true, ".scss": true, ".sass": true, ".less": true, ".styl": true,
	".html": true, ".htm": true, ".vue": true, ".svelte": true,
	".js": true, ".mjs": true, ".cjs": true,
}

var (
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	indexStyle = lipgloss.NewStyle().Bold(true)
)

func newFindCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "find [paths...]",
		Short: "List the color literals in files",
		Long: `Lists every color literal in the given files, or in the supported files
of the given directories, with a swatch and its position. The index shown
first is the one "csscolor set" expects.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.expand(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range files {
				if err := a.printColors(out, path); err != nil {
					return err
				}
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, out, files)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print the colors again whenever a file changes")
	return cmd
}

// expand replaces directories by the supported files below them.
func (a *app) expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := a.fs.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = afero.Walk(a.fs, path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if p != path && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if scannedExtensions[strings.ToLower(filepath.Ext(p))] {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// colorsIn reads a file and lists its colors.
func (a *app) colorsIn(path string) (string, []provider.Ref, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", nil, err
	}
	src := string(data)
	refs, err := a.providerFor(path).Colors(src)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, refs, nil
}

func (a *app) printColors(w io.Writer, path string) error {
	src, refs, err := a.colorsIn(path)
	if err != nil {
		return err
	}
	for i, ref := range refs {
		line, col := lineCol(src, ref.Start)
		fmt.Fprintf(w, "%s %s %s %s  %s\n",
			indexStyle.Render(fmt.Sprintf("%3d", i+1)),
			swatch(ref.Color),
			pathStyle.Render(fmt.Sprintf("%s:%d:%d", path, line, col)),
			ref.Text,
			ref.Color,
		)
	}
	return nil
}

// swatch renders a small block in the given color.
func swatch(c css.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(css.RGB(c.R, c.G, c.B).String())).
		Render("  ")
}

// lineCol returns the 1-based line and column (in characters) of offset.
func lineCol(src string, offset int) (int, int) {
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[lineStart:]) + 1
}

// watch prints a file's colors again every time it is written.
func (a *app) watch(ctx context.Context, w io.Writer, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, f := range files {
		// Editors often replace files, so watch the directory.
		dir := filepath.Dir(f)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			watched[dir] = true
		}
	}
	wanted := map[string]bool{}
	for _, f := range files {
		wanted[filepath.Clean(f)] = true
	}

	a.logger.Info("watching for changes", "files", len(files))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !wanted[filepath.Clean(event.Name)] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			fmt.Fprintf(w, "\n%s changed\n", event.Name)
			if err := a.printColors(w, event.Name); err != nil {
				a.logger.Warn("rescan failed", "file", event.Name, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "err", err)
		}
	}
}
