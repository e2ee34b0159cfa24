package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log/v2"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
	"github.com/yumosx/recycler/internal/config"
)

const defaultTailLines = 1000

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View recycler logs",
	Long:  `View the logs generated by recycler for the working directory.`,
	Example: heredoc.Doc(`
		# Print the last 1000 lines
		recycler logs

		# Print the last 50 lines and follow new entries
		recycler logs -f -t 50
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")

		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(cwd, false)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		logger := log.New(cmd.OutOrStdout())
		logger.SetLevel(log.DebugLevel)

		logsFile := filepath.Join(cfg.Options.DataDirectory, "logs", "recycler.log")
		if _, err := os.Stat(logsFile); os.IsNotExist(err) {
			logger.Warn("No logs found for this directory", "path", logsFile)
			return nil
		}

		if follow {
			return followLogs(cmd.Context(), logger, logsFile, tailLines)
		}
		return showLogs(logger, logsFile, tailLines)
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("tail", "t", defaultTailLines, "Show only the last N lines")
}

// lastLines reads the whole file and keeps the last n lines.
func lastLines(logsFile string, n int) ([]string, error) {
	t, err := tail.TailFile(logsFile, tail.Config{
		Follow: false,
		ReOpen: false,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %v", err)
	}
	defer t.Cleanup()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		lines = append(lines, line.Text)
		if len(lines) > n {
			lines = lines[len(lines)-n:]
		}
	}
	return lines, nil
}

func showLogs(logger *log.Logger, logsFile string, tailLines int) error {
	lines, err := lastLines(logsFile, tailLines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		printLogLine(logger, line)
	}
	return nil
}

func followLogs(ctx context.Context, logger *log.Logger, logsFile string, tailLines int) error {
	if err := showLogs(logger, logsFile, tailLines); err != nil {
		return err
	}

	t, err := tail.TailFile(logsFile, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Logger:   tail.DiscardingLogger,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return fmt.Errorf("failed to tail log file: %v", err)
	}
	defer t.Cleanup()
	defer t.Stop()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			printLogLine(logger, line.Text)
		case <-ctx.Done():
			return nil
		}
	}
}

// printLogLine re-renders one JSON slog record. Lines that are not JSON are
// skipped.
func printLogLine(logger *log.Logger, lineText string) {
	var data map[string]any
	if err := json.Unmarshal([]byte(lineText), &data); err != nil {
		return
	}
	msg, _ := data["msg"].(string)
	level, _ := data["level"].(string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var fields []any
	for _, k := range keys {
		switch k {
		case "msg", "level", "time":
			continue
		case "source":
			source, ok := data[k].(map[string]any)
			if !ok {
				continue
			}
			line, _ := source["line"].(float64)
			fields = append(fields, "source", fmt.Sprintf("%s:%d", filepath.Base(fmt.Sprint(source["file"])), int(line)))
		default:
			fields = append(fields, k, data[k])
		}
	}

	logger.SetReportTimestamp(false)
	if ts, ok := data["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			logger.SetReportTimestamp(true)
			logger.SetTimeFunction(func(time.Time) time.Time { return parsed })
		}
	}

	switch level {
	case "DEBUG":
		logger.Debug(msg, fields...)
	case "WARN":
		logger.Warn(msg, fields...)
	case "ERROR":
		logger.Error(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
}
