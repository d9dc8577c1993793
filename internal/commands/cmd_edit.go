package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/rxmark/internal/core/logging"
	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/internal/core/report"
	"github.com/colonyops/rxmark/internal/printer"
	"github.com/colonyops/rxmark/internal/tui"
	"github.com/colonyops/rxmark/pkg/profiler"
	"github.com/colonyops/rxmark/pkg/utils"
)

type EditCmd struct {
	flags        *Flags
	palette      string
	noWatch      bool
	profilerPort int
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Review and correct the highlights in a report",
		UsageText: "rxmark edit [options] <report>",
		Description: `Opens the report in the interactive editor.

Click a word (or press space on it) to cycle its highlight. Double-click
(or press space twice quickly, or e) to correct the word's text. ctrl+s
writes the report back to the same file; q discards the session.

While the session is unchanged, edits made to the file by other tools are
picked up automatically.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "palette",
				Aliases:     []string{"p"},
				Usage:       "highlight palette preset (overrides config)",
				Destination: &cmd.palette,
			},
			&cli.BoolFlag{
				Name:        "no-watch",
				Usage:       "do not reload the report when it changes on disk",
				Destination: &cmd.noWatch,
			},
			&cli.IntFlag{
				Name:        "profiler-port",
				Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
				Sources:     cli.EnvVars("RXMARK_PROFILER_PORT"),
				Destination: &cmd.profilerPort,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one report path")
	}
	return cmd.Edit(ctx, c.Args().First())
}

// Edit runs the editor on the report at path until the user saves or
// cancels.
func (cmd *EditCmd) Edit(ctx context.Context, path string) error {
	cfg := cmd.flags.Config

	palette, err := cfg.ResolvePalette()
	if err != nil {
		return err
	}
	if cmd.palette != "" {
		preset, ok := markup.Preset(cmd.palette)
		if !ok {
			return fmt.Errorf("unknown palette %q", cmd.palette)
		}
		palette = preset
	}

	holder := report.NewFileHolder(path)
	content, err := holder.Report()
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return err
	}

	logger := logging.Component("editor").With().Str("report", path).Logger()

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	// The editor owns the screen; anything printed meanwhile waits.
	deferred := &utils.DeferredWriter{}
	dp := printer.New(deferred)
	for _, w := range cfg.Warnings() {
		dp.Warnf("%s: %s", w.Category, w.Message)
	}

	var watcher *report.Watcher
	if !cmd.noWatch {
		watcher, err = report.NewWatcher(path, logger)
		if err != nil {
			dp.Warnf("not watching %s: %v", path, err)
			watcher = nil
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	m := tui.New(tui.Options{
		Palette:   palette,
		Window:    cfg.DoubleClickWindow,
		LoadDelay: cfg.LoadDelay,
		Holder:    holder,
		Report:    content,
		Title:     cfg.Export.Title,
		Watcher:   watcher,
		Logger:    logger,
	})

	ctx = logging.WithSessionID(ctx, m.Controller().SessionID())
	logger.Info().Ctx(ctx).Str("palette", palette.Name).Msg("editor started")

	finalModel, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if relErr := deferred.Release(os.Stderr); relErr != nil {
		logger.Error().Err(relErr).Msg("release deferred output")
	}
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	result := finalModel.(tui.Model).Result()
	switch {
	case result.Saved:
		dp.Successf("Saved %s", path)
	case result.Cancelled:
		dp.Infof("Discarded changes to %s", path)
	}
	return nil
}
