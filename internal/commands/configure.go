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
	Register(&ConfigCmd{})
}

// ConfigCmd implements the config command: it prints the current API
// settings or, with flags, persists new ones to config.json.
type ConfigCmd struct {
	url   string
	token string
}

// SetURL sets the base URL flag value (for testing).
func (c *ConfigCmd) SetURL(url string) {
	c.url = url
}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show or update API settings" }
func (c *ConfigCmd) Usage() string     { return "tasklist config [--url <base-url>] [--token <token>]" }
func (c *ConfigCmd) NeedsAPI() bool    { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.url, "url", "", "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}

	if c.url == "" && c.token == "" {
		if !cfg.HasBaseURL() {
			fmt.Fprintln(out, "no API base URL configured")
		} else {
			fmt.Fprintf(out, "base_url: %s\n", cfg.BaseURL)
		}
		return exitcode.Success
	}

	if c.url != "" {
		cfg.BaseURL = c.url
	}
	if c.token != "" {
		cfg.Token = c.token
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
