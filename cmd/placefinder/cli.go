package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/placefinder/places"
	pfprom "github.com/fwojciec/placefinder/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Container *places.Container
	Registry  *prometheus.Registry
	Metrics   *pfprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string  `name:"db" env:"PLACEFINDER_DB" help:"SQLite database path (default ~/.placefinder/placefinder.db)"`
	Storage   string  `env:"PLACEFINDER_STORAGE" enum:"sqlite,fs" default:"sqlite" help:"Storage backend (sqlite or fs)"`
	DataDir   string  `name:"data-dir" env:"PLACEFINDER_DATA_DIR" help:"Directory for the fs backend (default ~/.placefinder/data)"`
	Model     string  `env:"PLACEFINDER_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`
	Rate      float64 `env:"PLACEFINDER_RATE" default:"0" help:"Gemini requests per second, 0 for unlimited"`
	LogLevel  string  `name:"log-level" env:"PLACEFINDER_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level"`
	LogFormat string  `name:"log-format" env:"PLACEFINDER_LOG_FORMAT" enum:"text,json" default:"text" help:"Log format"`

	Serve   ServeCmd   `cmd:"" help:"Run the web application"`
	Login   LoginCmd   `cmd:"" help:"Validate and store a Gemini API key"`
	Search  SearchCmd  `cmd:"" help:"Search for places"`
	Save    SaveCmd    `cmd:"" help:"Save a place by its place ID"`
	List    ListCmd    `cmd:"" help:"List saved places"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved place"`
	Refresh RefreshCmd `cmd:"" help:"Refresh the summary of a saved place"`
	Export  ExportCmd  `cmd:"" help:"Export saved places as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string        `env:"PLACEFINDER_ADDR" default:"127.0.0.1:8080" help:"Listen address"`
	Debounce time.Duration `env:"PLACEFINDER_DEBOUNCE" default:"300ms" help:"Search input debounce delay"`
	ToastTTL time.Duration `name:"toast-ttl" env:"PLACEFINDER_TOAST_TTL" default:"4s" help:"Notification lifetime"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Key string `arg:"" optional:"" help:"Gemini API key (read from stdin when omitted)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search text"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	PlaceID string `arg:"" name:"place-id" help:"Place ID from search results"`
	Name    string `arg:"" help:"Place name from search results"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	JSON bool `help:"Print saved places as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Place ID"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	ID string `arg:"" help:"Place ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Output file or directory (stdout when omitted)"`
}
