package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dreampie/jsminify/cmd/state"
)

type cmdConfig struct {
	gs *state.GlobalState
}

func (c *cmdConfig) run(cmd *cobra.Command, _ []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}
	return c.gs.Console.PrintYAML(conf)
}

func getCmdConfig(gs *state.GlobalState) *cobra.Command {
	c := &cmdConfig{gs: gs}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the consolidated configuration",
		Long: `Show the configuration the minify command would run with, after the
defaults, the config file, the environment and the flags are combined.`,
		Args: exactArgsWithMsg(0, "the configuration is read from flags, the environment and the config file"),
		RunE: c.run,
	}
	configCmd.Flags().SortFlags = false
	configCmd.Flags().AddFlagSet(configFlagSet())

	return configCmd
}
