package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/yumosx/recycler/internal/app"
	"github.com/yumosx/recycler/internal/config"
	"github.com/yumosx/recycler/internal/tui"
	"github.com/yumosx/recycler/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Int("page-size", 0, "Files fetched per page")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Int("columns", 0, "Columns in the file grid")
	rootCmd.Flags().Int("max-select", 0, "Maximum number of selected files")

	rootCmd.AddCommand(lsCmd, statusCmd, logsCmd, schemaCmd)
}

var rootCmd = &cobra.Command{
	Use:   "recycler [dir]",
	Short: "Browse and pick files in a paged terminal grid",
	Long: heredoc.Doc(`
		Recycler lists the files under a directory in a paged, recycled grid.
		Files can be previewed, filtered with a fuzzy query, grouped into albums
		by directory and selected, and the selection copied to the clipboard.
	`),
	Example: heredoc.Doc(`
		# Browse the current directory
		recycler

		# Browse a directory with four columns
		recycler ~/Pictures --columns 4

		# Run with debug logging in a specific directory
		recycler -d -c /path/to/project
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd, args)
		if err != nil {
			return err
		}
		defer app.Shutdown()

		// Set up the TUI.
		program := tea.NewProgram(
			tui.New(app),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
			tea.WithMouseCellMotion(),
			tea.WithFilter(tui.MouseEventFilter),
		)

		go app.Subscribe(program)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}

// setupApp loads the configuration and starts the app for the directory
// named in args, or the working directory.
func setupApp(cmd *cobra.Command, args []string) (*app.App, error) {
	cfg, root, err := setupConfig(cmd, args)
	if err != nil {
		return nil, err
	}

	appInstance, err := app.New(cmd.Context(), cfg, root)
	if err != nil {
		slog.Error("Failed to create app instance", "error", err)
		return nil, err
	}
	return appInstance, nil
}

// setupConfig loads the configuration and applies the flags that override
// it. It returns the directory to browse.
func setupConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return nil, "", err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, "", err
	}

	root := cwd
	if len(args) > 0 {
		root = args[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(cwd, root)
		}
	}
	return cfg, filepath.Clean(root), nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("page-size") {
		cfg.Options.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Lookup("columns") != nil && flags.Changed("columns") {
		cfg.Options.GridColumns, _ = flags.GetInt("columns")
	}
	if flags.Lookup("max-select") != nil && flags.Changed("max-select") {
		cfg.Options.MaxSelect, _ = flags.GetInt("max-select")
	}
	return cfg.Validate()
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return filepath.Abs(cwd)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
