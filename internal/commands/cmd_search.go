package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/rxmark/internal/core/logging"
	"github.com/colonyops/rxmark/internal/core/report"
	"github.com/colonyops/rxmark/internal/core/search"
	"github.com/colonyops/rxmark/internal/printer"
	"github.com/colonyops/rxmark/pkg/iojson"
)

type SearchCmd struct {
	flags    *Flags
	editor   *EditCmd
	fr       *iojson.FileReader[search.Request]
	textFile string
	fuzzy    bool
	output   string
	add      []string
	drop     []string
	edit     bool
}

// NewSearchCmd creates a new search command. The editor runs when --edit is
// given.
func NewSearchCmd(flags *Flags, editor *EditCmd) *SearchCmd {
	return &SearchCmd{
		flags:  flags,
		editor: editor,
		fr:     &iojson.FileReader[search.Request]{},
	}
}

func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "search",
		Usage: "Find medications in a text and produce a highlighted report",
		UsageText: `rxmark search [options]

Plain text from a file:
  rxmark search -t discharge.txt -o report.html

JSON request from stdin:
  echo '{"text":"Take aspirin daily","fuzzy":true}' | rxmark search`,
		Description: `Sends the text to the search backend and prints the matched drugs as JSON.

With --output the highlighted report is written to that file; add --edit to
review it in the editor straight away. --add and --drop adjust the drug
table before it is printed.

Input JSON schema:
  {"text": "free text", "fuzzy": false}`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "text-file",
				Aliases:     []string{"t"},
				Usage:       "read plain text instead of a JSON request (- for stdin)",
				Destination: &cmd.textFile,
			},
			&cli.BoolFlag{
				Name:        "fuzzy",
				Usage:       "also match misspelled drug names",
				Destination: &cmd.fuzzy,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the highlighted report to this file",
				Destination: &cmd.output,
			},
			&cli.StringSliceFlag{
				Name:        "add",
				Usage:       "append a row with this trade name",
				Destination: &cmd.add,
			},
			&cli.StringSliceFlag{
				Name:        "drop",
				Usage:       "remove rows with this trade name (case-insensitive)",
				Destination: &cmd.drop,
			},
			&cli.BoolFlag{
				Name:        "edit",
				Usage:       "open the written report in the editor",
				Destination: &cmd.edit,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.edit && cmd.output == "" {
		return fmt.Errorf("--edit requires --output")
	}

	req, err := cmd.request()
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config
	if cmd.output != "" {
		ctx = logging.WithReport(ctx, cmd.output)
	}

	client := &search.HTTPClient{
		Endpoint:   cfg.Search.Endpoint,
		HTTPClient: &http.Client{Timeout: cfg.Search.Timeout},
		Retries:    cfg.Search.Retries,
		Logger:     logging.Component("search"),
	}

	res, err := client.Find(ctx, req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	table, err := cmd.adjust(search.NewTable(res.Drugs))
	if err != nil {
		return err
	}

	if cmd.output != "" {
		if err := report.NewFileHolder(cmd.output).SetReport(res.HighlightedText); err != nil {
			return err
		}
		printer.Ctx(ctx).Successf("Wrote %s", cmd.output)
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, table.Rows()); err != nil {
		return err
	}

	if cmd.edit {
		return cmd.editor.Edit(ctx, cmd.output)
	}
	return nil
}

func (cmd *SearchCmd) request() (search.Request, error) {
	if cmd.textFile != "" {
		path := cmd.textFile
		if path == "-" {
			path = ""
		}
		text, err := iojson.ReadText(path)
		if err != nil {
			return search.Request{}, fmt.Errorf("read text: %w", err)
		}
		return search.Request{Text: text, Fuzzy: cmd.fuzzy}, nil
	}

	req, err := cmd.fr.Read()
	if err != nil {
		return search.Request{}, fmt.Errorf("read request: %w", err)
	}
	req.Fuzzy = req.Fuzzy || cmd.fuzzy
	return req, nil
}

// adjust applies --drop and then --add to the table.
func (cmd *SearchCmd) adjust(table *search.Table) (*search.Table, error) {
	for _, name := range cmd.drop {
		rows := table.Rows()
		for i := len(rows) - 1; i >= 0; i-- {
			if strings.EqualFold(rows[i].TradeName, name) {
				if err := table.DeleteRow(i); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, name := range cmd.add {
		i := table.AddRow()
		if err := table.SetRow(i, search.Drug{TradeName: name}); err != nil {
			return nil, err
		}
	}

	return table, nil
}
