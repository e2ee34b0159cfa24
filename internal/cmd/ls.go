package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/yumosx/recycler/internal/format"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/pager"
	"github.com/yumosx/recycler/internal/tui/components/files"
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "Print one page of the file list",
	Long: heredoc.Doc(`
		Print one page of the files recycler would show, newest first, without
		starting the interactive browser. The filter and album flags narrow the
		list the same way the browser does.
	`),
	Example: heredoc.Doc(`
		# Print the first page
		recycler ls

		# Print the second page of PNG files matching "cat"
		recycler ls --page 2 --filter cat

		# Print the files directly inside ./shots
		recycler ls --album shots
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := setupConfig(cmd, args)
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		query, _ := cmd.Flags().GetString("filter")
		album, _ := cmd.Flags().GetString("album")
		filter := files.Filter{Query: query}
		if album != "" {
			filter.Album = filepath.Join(root, album)
		}

		formatStr, _ := cmd.Flags().GetString("format")
		outputFormat, err := format.Parse(formatStr)
		if err != nil {
			return err
		}

		source := pager.NewFiles(root, cfg.ListOptions())
		return printPage(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), outputFormat, root, listSource(source, root, filter), page, cfg.Options.PageSize)
	},
}

func init() {
	lsCmd.Flags().Int("page", 1, "Page to print, starting at 1")
	lsCmd.Flags().StringP("filter", "f", "", "Fuzzy query matched against relative paths")
	lsCmd.Flags().String("album", "", "Only list files directly inside this directory, relative to dir")
	lsCmd.Flags().String("format", format.Text.String(), format.GetHelpText())
}

func listSource(f *pager.Files, root string, filter files.Filter) pager.DataSource[string] {
	if filter.Empty() {
		return f
	}
	return f.Filtered(func(paths []string) []string {
		return filter.Apply(root, paths)
	})
}

// printPage writes one page of paths relative to root. Text output is
// followed by a hint on errOut when more pages follow.
func printPage(ctx context.Context, out, errOut io.Writer, outputFormat format.OutputFormat, root string, source pager.DataSource[string], page, size int) error {
	if page < 1 {
		return fmt.Errorf("page %d: %w", page, pager.ErrInvalidPage)
	}
	p, err := source.List(ctx, page, size)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", root, err)
	}

	listing := format.Listing{Root: root, Page: page, Last: p.Last}
	for _, path := range p.Items {
		listing.Files = append(listing.Files, fsext.RelOrAbs(root, path))
	}
	if err := format.Write(out, outputFormat, listing); err != nil {
		return err
	}
	if !p.Last && outputFormat == format.Text {
		fmt.Fprintf(errOut, "more files on page %d\n", page+1)
	}
	return nil
}
