package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/lib/consts"
)

type versionCmd struct {
	gs     *state.GlobalState
	isJSON bool
}

func (c *versionCmd) run(cmd *cobra.Command, _ []string) error {
	if !c.isJSON {
		root := cmd.Root()
		root.SetArgs([]string{"--version"})
		_ = root.Execute()
		return nil
	}

	details := consts.VersionDetails()
	jsonDetails, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed produce a JSON version details: %w", err)
	}

	c.gs.Console.Printf("%s\n", jsonDetails)
	return nil
}

func getCmdVersion(gs *state.GlobalState) *cobra.Command {
	versionCmd := &versionCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  `Show the application version and exit.`,
		Args:  exactArgsWithMsg(0, "the version command takes no arguments"),
		RunE:  versionCmd.run,
	}

	cmd.Flags().BoolVar(&versionCmd.isJSON, "json", false, "if set, output version information will be in JSON format")

	return cmd
}
