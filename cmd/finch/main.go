package main

import (
	"flag"

	"github.com/finchapp/finch/internal/app"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	// Optional start folder; defaults to the home directory
	startPath := flag.Arg(0)

	app.Main(*debug, startPath)
}
