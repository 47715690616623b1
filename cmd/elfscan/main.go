// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

// Command elfscan provides an ELF object file inspector CLI.
//
// It exposes three subcommands:
//
//   - inspect: scan a path for ELF objects, decode them and persist a JSON report
//   - report:  render the last saved report in different formats
//   - types:   list the file types, machines and section/symbol kinds the decoder knows
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	elfadapter "elfscan/internal/adapter/elf"
	outputadapter "elfscan/internal/adapter/output"
	"elfscan/internal/domain/ports"
	"elfscan/internal/infrastructure"
	"elfscan/internal/logging"
	"elfscan/internal/usecase"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// envPrefix defines the prefix used for environment variables that
	// configure the CLI. For example:
	//
	//   ELFSCAN_PATH=/some/build/dir
	//   ELFSCAN_WORKERS=8
	envPrefix = "ELFSCAN"
)

// App wires configuration, shared dependencies and command handlers for the CLI.
//
// It stays small and focused on orchestration; scanning, decoding,
// persistence and rendering live in the internal packages.
type App struct {
	config *viper.Viper
	deps   *Dependencies
}

// Dependencies groups the shared services used by the CLI commands. The
// renderer registry is built per command because the text renderer takes
// command-level options.
type Dependencies struct {
	Scanner  *infrastructure.FSScanner
	Storage  *infrastructure.FileStorage
	Decoders []ports.ObjectDecoder
}

// NewApp constructs a new App instance with a configured Viper instance
// and shared dependencies. Environment variables use the ELFSCAN_ prefix
// and hyphens in flag names map to underscores.
func NewApp() *App {
	config := viper.New()
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	deps := &Dependencies{
		Scanner: infrastructure.NewFSScanner(),
		Storage: infrastructure.NewFileStorage(),
		Decoders: []ports.ObjectDecoder{
			elfadapter.NewDecoder(),
		},
	}

	return &App{
		config: config,
		deps:   deps,
	}
}

// main is the entry point for the elfscan CLI. It creates a root context,
// initializes the App and dispatches to the appropriate subcommand. All
// process exit codes are decided here.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	rootContext := context.Background()
	application := NewApp()

	command := os.Args[1]
	commandArgs := os.Args[2:]

	var err error

	switch command {
	case "inspect":
		err = application.runInspect(rootContext, commandArgs)
	case "report":
		err = application.runReport(rootContext, commandArgs)
	case "types":
		err = application.runTypes(rootContext, commandArgs)
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logging.New(os.Stderr, slog.LevelInfo).Error("command failed", "command", command, "err", err)
		os.Exit(1)
	}
}

// printUsage prints the top-level usage text for the elfscan CLI.
func printUsage() {
	fmt.Fprintf(os.Stderr, `elfscan - ELF object file inspector

Usage:
  elfscan inspect [options] [path]
  elfscan report  [options] [path]
  elfscan types

Commands:
  inspect   Decode ELF objects under a path and persist a report under .elfscan/report.json
  report    Render the last report (text or json)
  types     List the ELF constants the decoder understands

Run "elfscan <command> -h" for command-specific flags.
`)
}

// runInspect handles the "inspect" subcommand.
//
// It scans the path for candidate files, decodes each ELF object, persists
// the report under .elfscan/report.json and prints a human-readable or
// machine-readable summary to stdout.
//
// Configuration precedence (highest first):
//  1. Command-line flags
//  2. Environment variables ELFSCAN_*
//  3. Built-in defaults
func (a *App) runInspect(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flagSet.SortFlags = false

	flagSet.String("path", ".", "Path to scan (can also be given as positional argument)")
	flagSet.Int("workers", 0, "Number of worker goroutines (0 = use NumCPU)")
	flagSet.String("ext", "", "Comma-separated file extensions to include (e.g. .o,.so); empty = detect by magic")
	flagSet.String("format", "text", "Output format for immediate output (text|json)")
	flagSet.Int("max-symbols", 64, "Maximum symbol rows per object in text output (0 = unlimited)")
	flagSet.String("log-level", "info", "Log level (debug|info|warn|error)")

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  elfscan inspect [options] [path]

Options:
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	// Bind flags into the shared Viper instance so they can be overridden
	// by environment variables and still keep a single source of truth.
	if err := a.config.BindPFlags(flagSet); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}

	rootPath := a.config.GetString("path")
	workerCount := a.config.GetInt("workers")
	extensionsValue := a.config.GetString("ext")
	outputFormat := a.config.GetString("format")
	maxSymbols := a.config.GetInt("max-symbols")
	logger := logging.New(os.Stderr, logging.LevelFromString(a.config.GetString("log-level")))

	// If the user provided a positional path argument, it wins over the flag.
	remainingArgs := flagSet.Args()
	if len(remainingArgs) > 0 {
		rootPath = remainingArgs[0]
	}

	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
		if workerCount < 1 {
			workerCount = 1
		}
	}

	includeExtensions := parseExtensions(extensionsValue)

	inspectUseCase := usecase.NewInspectObjectsUseCase(
		a.deps.Scanner,
		a.deps.Scanner,
		a.deps.Decoders,
		a.deps.Storage,
		logger,
		workerCount,
	)

	scanReport, err := inspectUseCase.Execute(ctx, usecase.InspectObjectsRequest{
		RootPath:   rootPath,
		IncludeExt: includeExtensions,
	})
	if err != nil {
		return err
	}

	renderers := newRendererRegistry(maxSymbols)
	renderer, found := renderers.Get(outputFormat)
	if !found {
		return fmt.Errorf("unknown format %q", outputFormat)
	}

	renderedOutput, err := renderer.Render(scanReport)
	if err != nil {
		return err
	}

	fmt.Println(renderedOutput)
	return nil
}

// runReport handles the "report" subcommand.
//
// It loads the last saved report from .elfscan/report.json under the
// specified root and renders it in the requested format.
func (a *App) runReport(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flagSet.SortFlags = false

	flagSet.String("path", ".", "Path the report was generated for (can also be given as positional argument)")
	flagSet.String("format", "text", "Output format (text|json)")
	flagSet.Int("max-symbols", 64, "Maximum symbol rows per object in text output (0 = unlimited)")

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  elfscan report [options] [path]

Options:
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if err := a.config.BindPFlags(flagSet); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}

	rootPath := a.config.GetString("path")
	outputFormat := a.config.GetString("format")
	maxSymbols := a.config.GetInt("max-symbols")

	remainingArgs := flagSet.Args()
	if len(remainingArgs) > 0 {
		rootPath = remainingArgs[0]
	}

	reportUseCase := usecase.NewGenerateReportUseCase(a.deps.Storage, newRendererRegistry(maxSymbols))

	renderedOutput, err := reportUseCase.Execute(ctx, usecase.GenerateReportRequest{
		RootPath: rootPath,
		Format:   outputFormat,
	})
	if err != nil {
		return err
	}

	fmt.Println(renderedOutput)
	return nil
}

// runTypes handles the "types" subcommand. It has no flags and lists the
// constant groups the decoder understands.
func (a *App) runTypes(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("types", pflag.ContinueOnError)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  elfscan types

Lists the ELF constants the decoder understands.
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	typesUseCase := usecase.NewListTypesUseCase()
	summaries := typesUseCase.Execute(ctx)

	fmt.Println("Known ELF constants:")
	for _, s := range summaries {
		fmt.Printf("- [%s] %s (%s)\n    %s\n", s.Group, s.Name, s.ID, s.Description)
	}

	return nil
}

// parseExtensions normalizes a comma-separated list of file extensions into a
// slice of dot-prefixed extensions.
//
// Examples:
//
//	parseExtensions("o,so")      -> []string{".o", ".so"}
//	parseExtensions(".o,.so")    -> []string{".o", ".so"}
func parseExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	var extensions []string

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		extensions = append(extensions, trimmed)
	}

	return extensions
}

// newRendererRegistry constructs the renderer registry used by the CLI.
func newRendererRegistry(maxSymbols int) *outputadapter.RendererRegistry {
	return outputadapter.NewRendererRegistry(
		outputadapter.NewTextRenderer(maxSymbols),
		outputadapter.NewJSONRenderer(),
	)
}
