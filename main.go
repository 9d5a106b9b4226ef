// Package main is the entry point for the jsminify CLI application.
package main

import "github.com/dreampie/jsminify/cmd"

func main() {
	cmd.Execute()
}
