// Root command for the wordsmith CLI.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/internal/logger"
	"github.com/mesh-intelligence/wordsmith/internal/paths"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
	"github.com/mesh-intelligence/wordsmith/pkg/wordsmith"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds the global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	json      bool
	verbose   bool
}

// app carries the state shared by subcommands. PersistentPreRunE fills in
// everything below flags.
type app struct {
	flags  rootFlags
	stdout io.Writer
	stderr io.Writer

	configDir string
	v         *viper.Viper
	cfg       types.Config
	log       *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "wordsmith",
		Short: "Wordsmith generates vocabulary lessons with a language model",
		Long: `Wordsmith asks a language model for vocabulary words and example
sentences, stores them in a local SQLite database, and builds a short
reading lesson with practice questions as an HTML form.`,
		Version:           wordsmith.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir/wordsmith)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory holding vocab.db (default: $(CWD)/.wordsmith-db)")
	pf.BoolVar(&a.flags.json, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newLessonCmd(a))
	root.AddCommand(newReviewCmd(a))
	root.AddCommand(newWordsCmd(a))
	return root
}

// setup resolves directories, loads configuration, and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	a.v = v

	level := v.GetString(cfgKeyLogLevel)
	if a.flags.verbose {
		level = "debug"
	}
	log, err := logger.New(v.GetString(cfgKeyLogMode), level)
	if err != nil {
		return userErr(fmt.Errorf("build logger: %w", err))
	}
	a.log = log.With(zap.String("command", cmd.Name()))

	cfg, err := buildConfig(v)
	if err != nil {
		return userErr(err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg.DataDir = dataDir
	a.cfg = cfg

	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("provider", cfg.Provider),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("model", cfg.Model),
		logger.Redact("api_key", cfg.APIKey))
	return nil
}
