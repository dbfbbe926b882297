package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func showConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Show the effective configuration",
		Long: `Show the configuration derived from the defaults, the --config file and flags.

The derived configuration is rendered in YAML and can be used as a --config file.
`,
		Example: `  ramvfs show-config --config ramvfs.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(cfg.Override()); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if err := enc.Close(); err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}
