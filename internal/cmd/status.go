package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/yumosx/recycler/internal/config"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/pager"
	"github.com/yumosx/recycler/internal/tui/components/files"
	"github.com/yumosx/recycler/internal/tui/components/statuslist"
	"github.com/yumosx/recycler/internal/tui/recycler"
	"github.com/yumosx/recycler/internal/tui/util"
)

const defaultStatusWidth = 80

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Summarize a directory and the configuration in use",
	Example: heredoc.Doc(`
		# Summarize the current directory
		recycler status

		# Plain output for scripts
		recycler status ~/Pictures | cat
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := setupConfig(cmd, args)
		if err != nil {
			return err
		}

		entries := statusEntries(cmd.Context(), cfg, root)
		out := cmd.OutOrStdout()
		width, tty := outputWidth(out)
		printStatus(out, entries, width, tty)
		return nil
	},
}

// statusEntries describes root as the browser would list it.
func statusEntries(ctx context.Context, cfg *config.Config, root string) []statuslist.Entry {
	entries := []statuslist.Entry{
		{Title: "Directory", Description: fsext.PrettyPath(root)},
	}

	paths, err := pager.NewFiles(root, cfg.ListOptions()).All(ctx)
	if err != nil {
		entries = append(entries, statuslist.Entry{Type: util.InfoTypeError, Title: "Files", Description: err.Error()})
	} else {
		pages := (len(paths) + cfg.Options.PageSize - 1) / cfg.Options.PageSize
		entries = append(entries,
			statuslist.Entry{Title: "Files", Description: fmt.Sprintf("%d in %d page(s) of %d", len(paths), pages, cfg.Options.PageSize)},
			statuslist.Entry{Title: "Albums", Description: fmt.Sprintf("%d", len(files.Albums(root, paths))-1)},
		)
		if len(paths) == 0 {
			entries[len(entries)-2].Type = util.InfoTypeWarn
		}
	}

	entries = append(entries, statuslist.Entry{
		Title:       "Grid",
		Description: fmt.Sprintf("%d columns, up to %d selected", cfg.Options.GridColumns, cfg.Options.MaxSelect),
	})

	for _, path := range cfg.Sources() {
		entries = append(entries, statuslist.Entry{Title: "Config", Description: fsext.PrettyPath(path)})
	}

	logFile := filepath.Join(cfg.Options.DataDirectory, "logs", "recycler.log")
	if fsext.IsFile(logFile) {
		entries = append(entries, statuslist.Entry{Title: "Logs", Description: fsext.PrettyPath(logFile)})
	} else {
		entries = append(entries, statuslist.Entry{Type: util.InfoTypeWarn, Title: "Logs", Description: "none yet"})
	}
	return entries
}

// outputWidth reports the terminal width of out, or a default width when out
// is not a terminal.
func outputWidth(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return defaultStatusWidth, false
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return defaultStatusWidth, true
	}
	return width, true
}

func printStatus(out io.Writer, entries []statuslist.Entry, width int, styled bool) {
	s := statuslist.New(recycler.NewHost(width, len(entries)))
	s.SetData(entries)
	text := statuslist.Render(s, width)
	if !styled {
		text = ansi.Strip(text)
	}
	fmt.Fprintln(out, text)
}
