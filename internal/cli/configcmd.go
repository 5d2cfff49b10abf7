package cli

import (
	"fmt"

	"github.com/leeforge/rucaptcha/json"
	"github.com/spf13/cobra"
)

func (c *CLI) configCommand() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, files and RUCAPTCHA_* environment
variables are merged. With --export the merged settings are written to a
file whose extension selects the format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" {
				if err := c.cfg.Export(export); err != nil {
					return err
				}
				fmt.Fprintln(c.out, export)
				return nil
			}

			data, err := json.MarshalIndent(&c.app, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the merged settings to this file")
	return cmd
}
