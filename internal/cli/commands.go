// Package cli wires the ramvfs command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/ramvfs/config"
	"github.com/brettbedarf/ramvfs/shell"
)

// ErrCommandFailed is returned when a -c command failed. The shell has
// already printed the reason.
var ErrCommandFailed = errors.New("command failed")

func New() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "ramvfs",
		Short: "Interactive shell over a volatile in-memory filesystem",
		Long: `Interactive shell over a volatile in-memory filesystem.

The filesystem is rebuilt on every start with the default seed tree, plus any
nodes from the --nodes definitions file. Nothing is persisted.
`,
		Example: `  ramvfs
  ramvfs --nodes nodes.yaml -c "tree" -c "cat /etc/motd"`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			sh := shell.New(env.fs, cmd.OutOrStdout())
			if len(opts.commands) > 0 {
				return runCommands(sh, opts.commands)
			}
			return sh.Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a .yaml, .yml or .json config file")
	cmd.PersistentFlags().StringVarP(&opts.nodesPath, "nodes", "n", "", "path to a node definitions file to load after seeding")
	cmd.PersistentFlags().IntVarP(&opts.verbose, "verbose", "v", config.InfoVerbose, "log verbosity between 1 (error) and 5 (trace)")
	cmd.Flags().StringArrayVarP(&opts.commands, "command", "c", nil, "run a shell command and exit (repeatable)")

	cmd.AddCommand(statCmd(opts))
	cmd.AddCommand(treeCmd(opts))
	cmd.AddCommand(showConfigCmd(opts))
	return cmd
}

// runCommands executes each line in order, stopping early at exit. Failed
// lines do not stop the run but make it fail.
func runCommands(sh *shell.Shell, lines []string) error {
	var failed bool
	for _, line := range lines {
		err := sh.Exec(line)
		if errors.Is(err, shell.ErrExit) {
			break
		}
		if err != nil {
			failed = true
		}
	}
	if failed {
		return ErrCommandFailed
	}
	return nil
}
