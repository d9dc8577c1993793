package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/pkg/iojson"
)

type TokensCmd struct {
	flags *Flags
}

func NewTokensCmd(flags *Flags) *TokensCmd {
	return &TokensCmd{flags: flags}
}

func (cmd *TokensCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a report as JSON",
		UsageText: "rxmark tokens <report>",
		Description: `Tokenizes the report with the configured palette and prints one JSON
array of {kind, text, category} objects. Reads stdin when no path is given.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *TokensCmd) run(_ context.Context, c *cli.Command) error {
	text, err := iojson.ReadText(c.Args().First())
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	palette, err := cmd.flags.Config.ResolvePalette()
	if err != nil {
		return err
	}

	tokens := markup.Tokenize(text, palette)
	return iojson.WriteWith(c.Root().Writer, os.Stderr, tokens)
}
