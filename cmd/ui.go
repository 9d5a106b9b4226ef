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
	"bytes"
	"fmt"
	"text/template"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/minifier"
	"github.com/dreampie/jsminify/ui/pb"
)

func printBanner(gs *state.GlobalState) {
	gs.Console.Printf("\n%s\n\n", gs.Console.Banner())
}

// printResults writes a bar per produced artifact to stdout, comparing the
// size of its inputs with the size of the minified output.
func printResults(gs *state.GlobalState, conf minifier.Config, p *minifier.Plugin) {
	if conf.Skip {
		gs.Console.Printf("  %s\n\n", gs.Console.Faint("minification skipped"))
		return
	}

	width, err := gs.Console.TermWidth()
	if err != nil {
		gs.Logger.WithError(err).Debug("Couldn't get the terminal width")
	}

	artifacts := p.Artifacts()
	gs.Console.Printf("  %s %s: %d input(s), %d output(s)\n\n",
		gs.Console.Success("done"), conf.Mode(), len(p.Files()), len(artifacts))
	if len(artifacts) == 0 {
		return
	}

	cwd, _ := gs.Getwd()
	bars := make([]*pb.Bar, 0, len(artifacts))
	leftLen := 0
	for _, a := range artifacts {
		left := displayPath(cwd, a.Destination)
		opts := []pb.BarOption{
			pb.WithLeft(left),
			pb.WithLogger(gs.Logger),
			pb.WithStatus(pb.Done),
			pb.WithSizes(a.InputBytes, a.OutputBytes),
		}
		if a.Warnings > 0 {
			opts = append(opts, pb.WithStatus(pb.Warned), pb.WithRight(fmt.Sprintf("%d warning(s)", a.Warnings)))
		}
		bars = append(bars, pb.New(opts...))
		if len(left) > leftLen {
			leftLen = len(left)
		}
	}

	if maxLeft := width / 2; leftLen > maxLeft {
		leftLen = maxLeft
	}
	// room for the indentation, the status and the sizes on the right
	widthDelta := width - leftLen - 36 - pb.DefaultWidth
	colorize := !gs.Flags.NoColor && gs.Console.IsTTY
	for _, bar := range bars {
		render := bar.Render(leftLen, widthDelta)
		render.Color = colorize
		render.Left = fmt.Sprintf("%-*s", leftLen, render.Left)
		gs.Console.Printf("    %s\n", render.String())
	}
	gs.Console.Print("\n")
}

// displayPath shortens path to be relative to the working directory when it
// lives below it.
func displayPath(cwd, path string) string {
	if cwd == "" {
		return path
	}
	if rel, ok := fsext.RelativeTo(cwd, path); ok {
		return rel
	}
	return path
}

func renderExample(tpl, binaryName string) string {
	var text bytes.Buffer
	if err := template.Must(template.New("").Parse(tpl)).Execute(&text, binaryName); err != nil {
		return tpl
	}
	return text.String()
}
