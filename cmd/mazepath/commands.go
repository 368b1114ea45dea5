package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mazepath/config"
	"github.com/katalvlaran/mazepath/engine"
	"github.com/katalvlaran/mazepath/logging"
	"github.com/katalvlaran/mazepath/maze"
	"github.com/katalvlaran/mazepath/server"
)

// errFailedQueries is returned by solve when at least one file failed.
var errFailedQueries = errors.New("one or more mazes failed")

// app carries state shared by every subcommand after PersistentPreRunE.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "mazepath",
		Short: "Minimum-cost routes through mazes where turning is expensive",
		Long: `mazepath finds the cheapest way from S to E in a grid maze, where a step
costs 1 and a 90 degree turn costs 1000, and counts every tile that lies on
some cheapest route.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(a.solveCmd(), a.inspectCmd(), a.serveCmd())

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	logger, err := logging.New(cfg.Log, "mazepath", a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger

	return nil
}

func (a *app) newEngine() (*engine.Engine, error) {
	return engine.New(a.cfg.Solver, engine.WithLogger(a.logger))
}

// readMaze reads path, or stdin when path is "-".
func (a *app) readMaze(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (a *app) solveCmd() *cobra.Command {
	var (
		tiles   bool
		asJSON  bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "solve [file...]",
		Short: "Print the minimum cost and optimal tile count of each maze",
		Long: `Solve every maze file concurrently and print one line per file:

    <name>  cost=<cost>  tiles=<tiles>

A file named "-" is read from stdin. Unreachable goals print "unreachable";
malformed files are reported and make the command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.newEngine()
			if err != nil {
				return err
			}
			var override *bool
			if cmd.Flags().Changed("tiles") {
				override = &tiles
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Batch.Workers
			}

			queries := make([]engine.Query, 0, len(args))
			failed := false
			for _, path := range args {
				text, err := a.readMaze(path)
				if err != nil {
					a.logger.Error("cannot read maze", slog.String("path", path), slog.Any("error", err))
					fmt.Fprintf(a.stdout, "%s\terror: %v\n", path, err)
					failed = true
					continue
				}
				queries = append(queries, engine.Query{Name: path, Text: text, Tiles: override})
			}

			outcomes, err := eng.SolveAll(cmd.Context(), queries, workers)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				if o.Err != nil {
					failed = true
				}
				if err := a.printOutcome(o, asJSON); err != nil {
					return err
				}
			}
			if failed {
				return errFailedQueries
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&tiles, "tiles", true, "count tiles on optimal paths (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON report per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "mazes solved concurrently (default from config)")

	return cmd
}

func (a *app) printOutcome(o engine.Outcome, asJSON bool) error {
	if asJSON {
		if o.Err != nil {
			return json.NewEncoder(a.stdout).Encode(map[string]string{
				"name":  o.Query.Name,
				"error": o.Err.Error(),
			})
		}
		return json.NewEncoder(a.stdout).Encode(o.Report)
	}

	var err error
	switch {
	case o.Err != nil:
		_, err = fmt.Fprintf(a.stdout, "%s\terror: %v\n", o.Query.Name, o.Err)
	case !o.Report.Reachable:
		_, err = fmt.Fprintf(a.stdout, "%s\tunreachable\n", o.Query.Name)
	default:
		_, err = fmt.Fprintf(a.stdout, "%s\tcost=%d\ttiles=%d\n", o.Query.Name, o.Report.Cost, o.Report.Tiles)
	}

	return err
}

func (a *app) inspectCmd() *cobra.Command {
	var (
		draw  bool
		glyph string
	)
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe one maze and optionally draw its optimal tiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(glyph) != 1 {
				return fmt.Errorf("--glyph must be a single character, got %q", glyph)
			}
			text, err := a.readMaze(args[0])
			if err != nil {
				return err
			}
			m, err := maze.Parse(text)
			if err != nil {
				return err
			}
			eng, err := a.newEngine()
			if err != nil {
				return err
			}
			rep, err := eng.SolveMaze(cmd.Context(), args[0], m, true)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "size:       %dx%d\n", m.Width, m.Height)
			fmt.Fprintf(a.stdout, "start:      %s\n", m.Start)
			fmt.Fprintf(a.stdout, "goal:       %s\n", m.Goal)
			fmt.Fprintf(a.stdout, "open cells: %d\n", m.OpenCells())
			fmt.Fprintf(a.stdout, "regions:    %d\n", len(m.Regions()))
			if !rep.Reachable {
				fmt.Fprintln(a.stdout, "result:     unreachable")
				return nil
			}
			fmt.Fprintf(a.stdout, "cost:       %d\n", rep.Cost)
			fmt.Fprintf(a.stdout, "tiles:      %d\n", rep.Tiles)
			fmt.Fprintf(a.stdout, "finalized:  %d\n", rep.Stats.Finalized)
			fmt.Fprintf(a.stdout, "ties:       %d\n", rep.Stats.Ties)

			if draw {
				fmt.Fprintln(a.stdout)
				return m.Render(a.stdout, rep.Marks(), glyph[0])
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&draw, "draw", false, "render the maze with optimal tiles marked")
	cmd.Flags().StringVar(&glyph, "glyph", "O", "character marking optimal tiles")

	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			eng, err := a.newEngine()
			if err != nil {
				return err
			}
			h := server.NewHandlers(eng, a.cfg.Server, a.logger)

			return server.Run(cmd.Context(), a.cfg.Server.Addr, server.NewRouter(h), a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
