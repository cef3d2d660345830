// Package main is the entry point for the hawk CLI.
// It signs the user in and out of a HawkCD server.
package main

import (
	"hawk/cli/cmd"
)

func main() {
	cmd.Execute()
}
