// Package cli implements the busstop command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/busstop/pkg/arrivals"
	"github.com/matzehuels/busstop/pkg/buildinfo"
	"github.com/matzehuels/busstop/pkg/cache"
	"github.com/matzehuels/busstop/pkg/integrations/tfl"
	"github.com/matzehuels/busstop/pkg/pipeline"
	"github.com/matzehuels/busstop/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// BaseURL overrides the StopPoint API root; empty means the TfL default.
	BaseURL string

	// names outlives individual runs so that watch and serve resolve each
	// stop name once per process.
	names cache.Cache
	stats *runStats
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		names:  cache.NewMemoryCache(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableStats registers counters for requests, cache lookups and stops,
// and logs a summary after each one-shot run.
func (c *CLI) EnableStats() {
	c.stats = newRunStats()
	c.stats.register()
}

// boardFlags are shared by every command that builds boards.
type boardFlags struct {
	configPath string
	parallel   int
	noCache    bool
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "configuration file (default: $BUSSTOP_HOME, ~, built-in)")
	cmd.PersistentFlags().IntVar(&f.parallel, "parallel", pipeline.DefaultParallelism, "number of stops fetched at once")
	cmd.PersistentFlags().BoolVar(&f.noCache, "no-cache", false, "resolve stop names on every run")
}

// filterFlags select arrivals by line and destination.
type filterFlags struct {
	line        string
	destination string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.line, "line", "", "only show this line (case-insensitive)")
	cmd.Flags().StringVar(&f.destination, "destination", "", "only show destinations containing this text (case-insensitive)")
}

func (f filterFlags) filter() render.Filter {
	return render.Filter{Line: f.line, Destination: f.destination}
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand it prints the boards once.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		board  boardFlags
		filter filterFlags
		asJSON bool
		asText bool
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Live TfL bus and tube arrivals for your stops",
		Long: `busstop prints live arrival predictions from the TfL StopPoint API for the
stops listed in busstop_config.toml, as JSON (default) or as a text board.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := render.FormatJSON
			if asText {
				format = render.FormatText
			}
			return c.printBoards(cmd, board, filter.filter(), format)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	board.register(root)
	filter.register(root)
	root.Flags().BoolVarP(&asJSON, "json", "j", false, "pretty print json (default)")
	root.Flags().BoolVarP(&asText, "text", "t", false, "print formatted text")
	root.MarkFlagsMutuallyExclusive("json", "text")

	root.AddCommand(c.watchCommand(&board))
	root.AddCommand(c.serveCommand(&board))
	root.AddCommand(c.configCommand(&board))
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) printBoards(cmd *cobra.Command, board boardFlags, filter render.Filter, format string) error {
	ctx := cmd.Context()
	runner, _, err := c.newRunner(board)
	if err != nil {
		return err
	}

	var spin *Spinner
	if isTerminal(os.Stderr) && c.Logger.GetLevel() > log.DebugLevel {
		spin = newSpinner(ctx, os.Stderr, "Fetching arrivals...")
		spin.Start()
	}
	prog := newProgress(c.Logger)
	results := runner.RunAll(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.debug("fetched %d stops", len(results))
	if c.stats != nil {
		c.stats.log(c.Logger)
	}

	return render.Write(cmd.OutOrStdout(), format, filter.Apply(results))
}

// =============================================================================
// Runner Factory
// =============================================================================

// newClient creates a TfL client, passing TFL_APP_KEY when set.
func (c *CLI) newClient() *tfl.Client {
	client := tfl.NewClient(c.BaseURL, c.Logger)
	client.SetQuery("app_key", os.Getenv(tfl.AppKeyEnv))
	return client
}

// newRunner creates a pipeline runner for CLI use.
//
// Unlike pipeline.Options, a zero --parallel is an error: the flag already
// defaults to pipeline.DefaultParallelism, so zero was typed by the user.
func (c *CLI) newRunner(board boardFlags) (*pipeline.Runner, *tfl.Client, error) {
	if board.parallel < 1 || board.parallel > pipeline.MaxParallelism {
		return nil, nil, fmt.Errorf("--parallel must be between 1 and %d, got %d", pipeline.MaxParallelism, board.parallel)
	}
	opts := pipeline.Options{ConfigPath: board.configPath, Parallelism: board.parallel}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	names := c.names
	if board.noCache {
		names = cache.NewNullCache()
	}

	client := c.newClient()
	agg := arrivals.NewAggregator(client, names, arrivals.WithLogger(c.Logger))
	return pipeline.NewRunner(agg, opts, c.Logger), client, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
