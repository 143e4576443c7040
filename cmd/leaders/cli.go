package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	lhttp "github.com/fwojciec/leaders/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Logger is set when debug logging is enabled.
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `env:"LEADERS_DEBUG" help:"Log directory calls and page fetches to stderr"`

	Crawl  CrawlCmd  `cmd:"" help:"Fetch leaders and enrich them from Wikipedia"`
	Runs   RunsCmd   `cmd:"" help:"List runs stored in a database"`
	Export ExportCmd `cmd:"" help:"Write a stored run to a file"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	BaseURL     string        `name:"base-url" env:"LEADERS_BASE_URL" default:"${base_url}" help:"Leaders directory base URL"`
	Detailed    []string      `short:"d" env:"LEADERS_DETAILED" default:"us" help:"Countries whose leaders also get infobox personal details"`
	Concurrency int           `short:"c" env:"LEADERS_CONCURRENCY" default:"4" help:"Concurrent article fetch limit"`
	Timeout     time.Duration `short:"t" env:"LEADERS_TIMEOUT" default:"10s" help:"Timeout per HTTP request"`
	Retries     int           `env:"LEADERS_RETRIES" default:"3" help:"Retries per failed article fetch, with 1s, 2s, 4s... backoff"`
	RPS         float64       `name:"rps" env:"LEADERS_RPS" default:"5" help:"Requests per second per Wikipedia host (0 disables)"`
	Output      string        `short:"o" env:"LEADERS_OUTPUT" default:"leaders.json" help:"Output file"`
	Format      string        `short:"f" env:"LEADERS_FORMAT" help:"Output format: json or yaml (default: from output extension)"`
	DB          string        `env:"LEADERS_DB" help:"Also store the run in this SQLite database"`
	UserAgent   string        `name:"user-agent" env:"LEADERS_USER_AGENT" default:"${user_agent}" help:"User-Agent sent with every request"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB    string `env:"LEADERS_DB" required:"" help:"SQLite database path"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list (0 for all)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	RunID  string `arg:"" help:"Run ID"`
	DB     string `env:"LEADERS_DB" required:"" help:"SQLite database path"`
	Output string `short:"o" env:"LEADERS_OUTPUT" default:"leaders.json" help:"Output file"`
	Format string `short:"f" env:"LEADERS_FORMAT" help:"Output format: json or yaml (default: from output extension)"`
}

// defaultVars fills ${...} placeholders in flag defaults.
func defaultVars() map[string]string {
	return map[string]string{
		"base_url":   lhttp.DefaultBaseURL,
		"user_agent": lhttp.DefaultUserAgent,
	}
}
