package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazyjson/internal/app"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/favorites"
	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/ui/help"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lazyjson [file...]",
	Short: "Interactive JSON viewer with incremental queries",
	Long: `lazyjson browses large JSON documents and JSON lines streams in the
terminal. Queries derive new panes from the one on the left; every pane keeps
its own selection, scroll position and folds.

Reads standard input when no file is given or the file is "-".

Examples:
  lazyjson data.json
  curl -s https://api.example.com/users | lazyjson
  lazyjson --engine jmespath --query 'items[0]' data.json

Keys:
` + help.Text(),
	Version:      version,
	SilenceUsage: true,
	RunE:         runViewer,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved queries",
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export saved queries to CSV or JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFavoritesExport,
}

var (
	flagConfig string
	flagEngine string
	flagQuery  string
	flagBench  bool
	flagFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/lazyjson/config.yaml)")
	rootCmd.Flags().StringVarP(&flagEngine, "engine", "e", "", "Query engine (jq or jmespath)")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Query of the first child pane")
	rootCmd.Flags().BoolVar(&flagBench, "bench", false, "Load the input and exit")

	favoritesExportCmd.Flags().StringVarP(&flagFormat, "format", "f", "json", "Export format (csv/json)")

	favoritesCmd.AddCommand(favoritesExportCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagEngine != "" {
		cfg.Query.Engine = flagEngine
	}
	if flagQuery != "" {
		cfg.Query.Initial = flagQuery
	}
	return cfg, nil
}

// setupLogging sends log output to the configured file, or discards it so
// warnings never corrupt the terminal UI
func setupLogging(cfg *config.Config) (io.Closer, error) {
	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(cfg.Log.File, "lazyjson")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// readInputs decodes every named file, or standard input
func readInputs(args []string, opts jsonv.DecodeOptions) ([]app.Input, bool, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	var (
		inputs    []app.Input
		fromStdin bool
	)
	for _, path := range args {
		if path == "-" {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, false, fmt.Errorf("no input: pass a file or pipe JSON into standard input")
			}
			docs, err := jsonv.Decode(os.Stdin, opts)
			if err != nil {
				return nil, false, fmt.Errorf("failed to parse standard input: %w", err)
			}
			inputs = append(inputs, app.Input{Name: "stdin", Docs: docs})
			fromStdin = true
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, false, err
		}
		docs, err := jsonv.Decode(f, opts)
		f.Close()
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		inputs = append(inputs, app.Input{Name: filepath.Base(path), Docs: docs})
	}
	return inputs, fromStdin, nil
}

// openStores opens query history and favorites in the config directory.
// Either may be nil when the directory is unusable.
func openStores(cfg *config.Config) (*history.Store, *favorites.Manager) {
	dir, err := config.EnsureConfigPath()
	if err != nil {
		log.Printf("Warning: %v (history and favorites disabled)", err)
		return nil, nil
	}

	var store *history.Store
	if cfg.Query.HistoryEnabled {
		store, err = history.NewStore(filepath.Join(dir, "history.db"), cfg.Query.HistoryLimit)
		if err != nil {
			log.Printf("Warning: could not open query history: %v", err)
			store = nil
		}
	}

	mgr, err := favorites.NewManager(dir)
	if err != nil {
		log.Printf("Warning: could not load favorites: %v", err)
		mgr = nil
	}
	return store, mgr
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	inputs, fromStdin, err := readInputs(args, jsonv.DecodeOptions{AllowComments: cfg.Data.AllowComments})
	if err != nil {
		return err
	}

	store, mgr := openStores(cfg)
	if store != nil {
		defer store.Close()
	}

	a, err := app.New(cfg, inputs, app.Options{History: store, Favorites: mgr})
	if err != nil {
		return err
	}
	defer a.Close()
	if flagBench {
		return nil
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if fromStdin {
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(a, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func runFavoritesExport(cmd *cobra.Command, args []string) error {
	dir, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	mgr, err := favorites.NewManager(dir)
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	var written string
	switch flagFormat {
	case "csv":
		written, err = mgr.ExportToCSV(path)
	case "json":
		written, err = mgr.ExportToJSON(path)
	default:
		return fmt.Errorf("unknown export format %q (want csv or json)", flagFormat)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d favorites to %s\n", len(mgr.GetAll()), written)
	return nil
}
