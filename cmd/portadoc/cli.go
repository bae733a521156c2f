package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/awrzos/portadoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Regions    portadoc.RegionExtractor
	Metadata   portadoc.MetadataExtractor
	Transcoder portadoc.Transcoder
	Exporter   portadoc.Exporter
	Verifier   portadoc.Verifier
	Store      portadoc.DocumentStore
	History    portadoc.HistoryService
	Fetcher    portadoc.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline details to stderr"`
	DB      string `help:"History database path (overrides PORTADOC_DB)"`

	Convert ConvertCmd `cmd:"" help:"Convert an HTML article to a portable Markdown document"`
	Export  ExportCmd  `cmd:"" help:"Export a portable document as publish-ready HTML"`
	Verify  VerifyCmd  `cmd:"" help:"Verify a portable document against its original page"`
	History HistoryCmd `cmd:"" help:"List recorded conversions"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Source      string `arg:"" help:"Article source: a local HTML file or an http(s) URL"`
	Out         string `short:"o" help:"Output file path (defaults to <slug>.md in the output directory)"`
	Dir         string `short:"d" default:"." help:"Output directory when --out is not given"`
	Engine      string `default:"heuristic" enum:"heuristic,readability,trafilatura" help:"Region extraction engine"`
	Slug        string `help:"Override the derived slug"`
	Category    string `help:"Set the primary category"`
	SeriesOrder int    `name:"series-order" help:"Set the position within an article series"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Doc            string `arg:"" help:"Portable document path"`
	Out            string `short:"o" help:"Output HTML file path (defaults to stdout)"`
	ImageRoot      string `name:"image-root" help:"Directory for resolving relative image references (defaults to the document directory)"`
	IncludeWrapper bool   `name:"include-wrapper" help:"Wrap blocks in editor annotation comments"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	Original string `arg:"" optional:"" help:"Original HTML file"`
	Doc      string `arg:"" optional:"" help:"Portable document path"`

	Batch       []string `placeholder:"HTMLDIR,DOCDIR" help:"Verify two directories paired by base name (give twice: --batch htmldir --batch docdir)"`
	Strict      bool     `help:"Treat warnings as failures"`
	JSON        bool     `help:"Emit the report as JSON"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent verification limit in batch mode"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct{}
