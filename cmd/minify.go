/*
 *
 * jsminify - JavaScript minification for build pipelines
 * Copyright (C) 2024 Dreampie
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/minifier"
)

// cmdMinify handles the `jsminify minify` sub-command
type cmdMinify struct {
	gs *state.GlobalState
}

func (c *cmdMinify) run(cmd *cobra.Command, _ []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	logger := c.gs.Logger
	logger.WithField("config", conf.String()).Debug("Consolidated the configuration")

	if !c.gs.Flags.Quiet {
		printBanner(c.gs)
	}

	plugin := minifier.NewPlugin(logger, c.gs.FS)
	if err := plugin.Load(conf); err != nil {
		return err
	}
	if err := plugin.Execute(c.gs.Ctx); err != nil {
		return err
	}

	if !c.gs.Flags.Quiet {
		printResults(c.gs, conf, plugin)
	}
	return nil
}

func (c *cmdMinify) flagSet() *pflag.FlagSet {
	return configFlagSet()
}

func getCmdMinify(gs *state.GlobalState) *cobra.Command {
	c := &cmdMinify{gs: gs}

	minifyCmd := &cobra.Command{
		Use:   "minify",
		Short: "Minify the JavaScript files of a project",
		Long: `Minify the JavaScript files of a project.

Files are taken from the include files, the source fileset or the source
directory, in that order. Every file is written next to its path below the
output directory as <name>.min.js, or all files are merged into a single
output file with --merge.`,
		Example: `
  # Minify every file of src/main/javascript into src/main/webapp/javascript
  {{.}} minify

  # Merge a couple of files into one
  {{.}} minify --merge --include lib/a.js --include lib/b.js --output-file dist/app.min.js

  # Use a different project directory and also write gzip copies
  {{.}} minify --project-dir ../webapp --compress gzip`[1:],
		Args: exactArgsWithMsg(0, "files are selected with flags or the config file"),
		RunE: c.run,
	}

	minifyCmd.Flags().SortFlags = false
	minifyCmd.Flags().AddFlagSet(c.flagSet())
	minifyCmd.Example = renderExample(minifyCmd.Example, gs.BinaryName)

	return minifyCmd
}
