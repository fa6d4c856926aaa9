package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/internal/config"
	"github.com/xqrs/tview/internal/dialog"
	"github.com/xqrs/tview/internal/logging"
	"github.com/xqrs/tview/internal/task"
)

// errNotTerminal is returned when the UI is started without a terminal.
var errNotTerminal = errors.New("stdout is not a terminal")

type options struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
	itemHeight int
	noMouse    bool
}

// NewRootCmd creates the taskpoints command.
func NewRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "taskpoints",
		Short: "Edit task point observation zones",
		Long: `Shows the task points of the task database in a scrollable list.

Enter or a tap on the selected point cycles its observation zone type.
Points can be dragged with the mouse and keep scrolling after release.`,
		Example: `  # Create a demo task and open it
  taskpoints seed --count 40
  taskpoints

  # Bigger rows and debug logs
  taskpoints --item-height 3 --log-level debug --log-file /tmp/taskpoints.log`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "taskpoints.yaml", "path of the YAML configuration")
	flags.StringVar(&opts.dbPath, "db", "", "path of the task database (overrides store.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides log.level)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (overrides log.file)")
	cmd.Flags().IntVar(&opts.itemHeight, "item-height", 0, "lines per task point (overrides list.item_height)")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse input")

	cmd.AddCommand(newSeedCmd(&opts))
	return cmd
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Store.Path = opts.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if flags.Changed("item-height") {
		cfg.List.ItemHeight = opts.itemHeight
	}
	if flags.Changed("no-mouse") {
		cfg.List.Mouse = !opts.noMouse
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg config.Config) error {
	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := task.Open(cmd.Context(), cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	d := newDialog(store, cfg, logger)
	if err := d.Reload(cmd.Context()); err != nil {
		return err
	}

	app := tview.NewApplication().
		SetLogger(logging.Component(logger, "app")).
		EnableMouse(cfg.List.Mouse).
		SetRoot(d)

	logger.Info().Str("db", cfg.Store.Path).Int("points", len(d.Points())).Msg("starting")
	if err := app.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func newDialog(store dialog.Points, cfg config.Config, logger zerolog.Logger) *dialog.TaskDialog {
	d := dialog.New(store, logging.Component(logger, "dialog"))
	d.SetKeyMap(dialog.DefaultKeyMap(cfg.List.KeyMap()))
	d.List().
		SetItemHeight(cfg.List.ItemHeight).
		SetDragThreshold(cfg.List.DragThreshold).
		SetWheelStep(cfg.List.WheelStep).
		SetScrollBarArrows(cfg.List.ScrollBarArrows()).
		SetHasPointer(cfg.List.Mouse).
		SetKinetic(cfg.List.KineticConfig()).
		SetLogger(logging.Component(logger, "list"))
	return d
}

func newSeedCmd(opts *options) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the task with generated task points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *opts)
			if err != nil {
				return err
			}
			if count < 2 {
				return fmt.Errorf("--count must be at least 2, got %d", count)
			}

			store, err := task.Open(cmd.Context(), cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Seed(cmd.Context(), count); err != nil {
				return err
			}
			cmd.Printf("Seeded %d task points into %s\n", count, cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 30, "number of task points")
	return cmd
}
