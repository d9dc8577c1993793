package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/rxmark/internal/core/report"
	"github.com/colonyops/rxmark/internal/printer"
	"github.com/colonyops/rxmark/pkg/iojson"
)

type ExportCmd struct {
	flags  *Flags
	output string
	title  string
}

func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Render a report as a standalone HTML page",
		UsageText: "rxmark export [options] <report>",
		Description: `Wraps the report markup in an HTML document that keeps the highlight
colors and line breaks, suitable for opening in a browser.

Reads the report from stdin when no path is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output file (defaults to stdout)",
				Destination: &cmd.output,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "document title (overrides config)",
				Destination: &cmd.title,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	markup, err := iojson.ReadText(c.Args().First())
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	title := cmd.title
	if title == "" {
		title = cmd.flags.Config.Export.Title
	}

	if cmd.output == "" {
		return report.ExportHTML(c.Root().Writer, title, markup)
	}

	f, err := os.Create(cmd.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f, title, markup); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	printer.Ctx(ctx).Successf("Exported %s", cmd.output)
	return nil
}

func write(w io.Writer, title, markup string) error {
	bw := bufio.NewWriter(w)
	if err := report.ExportHTML(bw, title, markup); err != nil {
		return err
	}
	return bw.Flush()
}
