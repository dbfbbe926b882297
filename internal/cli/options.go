package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/ramvfs/adapters"
	"github.com/brettbedarf/ramvfs/config"
	"github.com/brettbedarf/ramvfs/filesystem"
	"github.com/brettbedarf/ramvfs/internal/arena"
	"github.com/brettbedarf/ramvfs/internal/util"
	"github.com/brettbedarf/ramvfs/requests"
)

type options struct {
	configPath string
	nodesPath  string
	verbose    int
	commands   []string
}

type env struct {
	cfg *config.Config
	fs  *filesystem.FileSystem
}

// loadConfig merges the config file (if any) and the verbosity flag over the
// defaults and initializes logging to stderr.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if o.configPath != "" {
		fileCfg, err := config.NewConfigFromFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		cfg = fileCfg
	}
	if cmd.Flags().Changed("verbose") {
		cfg.LogLvl = config.VerboseToLogLevel(o.verbose)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	util.InitializeLogger(cfg.LogLvl, cmd.ErrOrStderr())
	return cfg, nil
}

// setup builds the seeded filesystem and applies the definitions file
func (o *options) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := util.GetLogger("cli")

	fs := filesystem.NewFS(cfg, arena.New(cfg.ArenaSize))
	if err := fs.Seed(); err != nil {
		return nil, fmt.Errorf("seed filesystem: %w", err)
	}

	if o.nodesPath == "" {
		logger.Debug().Msg("No node definitions file provided")
		return &env{cfg: cfg, fs: fs}, nil
	}

	defs, err := requests.LoadFile(o.nodesPath, adapters.NewDefaultRegistry())
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("files", len(defs.Files)).
		Int("directories", len(defs.Dirs)).
		Str("nodes", o.nodesPath).
		Msg("Loaded node definitions")

	res, err := requests.Apply(cmd.Context(), fs, defs)
	if err != nil {
		// Individual failures were logged; keep what was created
		logger.Warn().Err(err).Msg("Node definitions partially applied")
	}
	logger.Info().Int("directories", res.Dirs).Int("files", res.Files).Msg("Added new nodes to filesystem")
	return &env{cfg: cfg, fs: fs}, nil
}
