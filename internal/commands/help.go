package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsAPI() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasklist                                 List all tasks
  tasklist list                            List all tasks
  tasklist add [common flags] [--done] <title...>
  tasklist toggle [common flags] <n>       Toggle completion of task n
  tasklist rm [common flags] <n>           Delete task n
  tasklist tui [common flags]              Interactive terminal UI
  tasklist config [--url <base-url>] [--token <token>]
  tasklist help
  tasklist version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Configuration:
  The API base URL comes from TASKLIST_API_URL or the base_url field of
  config.json in the config directory. TASKLIST_API_TOKEN or the token
  field supplies an optional bearer token.
`
