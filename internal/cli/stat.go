package cli

import (
	"github.com/spf13/cobra"

	"github.com/brettbedarf/ramvfs/shell"
)

func statCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "stat",
		Short:   "Print filesystem statistics after seeding and loading nodes",
		Example: `  ramvfs stat --nodes nodes.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return oneShot(shell.New(env.fs, cmd.OutOrStdout()), "df")
		},
	}
}

func treeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "tree [path]",
		Short:   "Print the directory tree after seeding and loading nodes",
		Example: `  ramvfs tree /documents`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return oneShot(shell.New(env.fs, cmd.OutOrStdout()), "tree", args...)
		},
	}
}

func oneShot(sh *shell.Shell, name string, args ...string) error {
	if err := sh.ExecArgs(append([]string{name}, args...)); err != nil {
		return ErrCommandFailed
	}
	return nil
}
