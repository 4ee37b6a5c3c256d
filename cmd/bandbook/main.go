/*
Bandbook looks up bands by their 1-based ID.

Usage:

	bandbook [flags] COMMAND

The commands are:

	get ID         show one band
	list           show every band
	pack SRC DEST  compile resources into a .bbp pack
	seed SRC DB    load resources into a SQLite database
	serve          serve bands over HTTP until interrupted

The flags are:

	-c, --config PATH
		Use the given file for the configuration instead of './bandbook.yml'.
		The file must be in JSON or YAML format. If not given, the
		BANDBOOK_CONFIG environment variable is checked as well.

	-r, --resources PATH
		Read bands from the given YAML/JSON resource file, .bbp pack, or
		.db/.sqlite database instead of the configured resources.

	--env PATH
		Load environment variables from the given file if it exists instead of
		'./.env'.

	-v, --verbose
		Enable logging.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/bandbook/internal/cli"
)

const (
	exitSuccess = 0
	exitError   = 1
	exitPanic   = 2
)

var exitCode = exitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			fmt.Fprintf(os.Stderr, "fatal panic: %v\n", panicErr)
			exitCode = exitPanic
		}
		os.Exit(exitCode)
	}()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		exitCode = exitError
	}
}
