package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/overviewer"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Resolver overviewer.Resolver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"OVERVIEWER_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" env:"OVERVIEWER_LOG_FORMAT" help:"Log format (text, json)"`

	StaticTimeout     time.Duration `default:"15s" env:"OVERVIEWER_STATIC_TIMEOUT" help:"Timeout for plain HTTP fetches"`
	NavigationTimeout time.Duration `default:"45s" env:"OVERVIEWER_NAVIGATION_TIMEOUT" help:"Page load timeout for browser fetches"`
	SettleDelay       time.Duration `default:"2s" env:"OVERVIEWER_SETTLE_DELAY" help:"Wait after page load before reading rendered markup"`
	MinLength         int           `default:"300" env:"OVERVIEWER_MIN_LENGTH" help:"Characters of cleaned text needed for success"`

	Stealth   bool   `env:"OVERVIEWER_STEALTH" help:"Apply stealth evasions to browser pages"`
	NoSandbox bool   `env:"OVERVIEWER_NO_SANDBOX" help:"Disable the Chrome sandbox (needed as root in containers)"`
	NoBrowser bool   `env:"OVERVIEWER_NO_BROWSER" help:"Skip browser fetches; dynamic attempts fail"`
	ChromeBin string `name:"chrome-bin" env:"OVERVIEWER_CHROME_BIN" help:"Path to the Chrome binary"`

	Scrape ScrapeCmd `cmd:"" help:"Extract the descriptive text of one website"`
	Serve  ServeCmd  `cmd:"" help:"Serve the scraper as a callable HTTP function"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL string `arg:"" help:"Website URL (https:// is added when missing)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr           string        `default:":8080" env:"OVERVIEWER_ADDR" help:"Listen address"`
	RequestTimeout time.Duration `default:"300s" env:"OVERVIEWER_REQUEST_TIMEOUT" help:"Maximum duration of one request"`
	MaxConcurrent  int64         `default:"0" env:"OVERVIEWER_MAX_CONCURRENT" help:"Maximum concurrent scrapes (0 = unlimited)"`
	Rate           float64       `default:"0" env:"OVERVIEWER_RATE" help:"Accepted requests per second (0 = unlimited)"`
	Burst          int           `default:"1" env:"OVERVIEWER_BURST" help:"Request burst allowed above the rate"`
}
