package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tailspect/tailspect/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	rulesPath := flag.String("rules", "", "override rules file path (optional)")
	follow := flag.Bool("follow", true, "keep tailing file arguments after loading")
	execCmd := flag.Bool("exec", false, "treat the arguments as a command to spawn")
	debugLog := flag.String("debuglog", "", "append pipeline diagnostics to this file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		RulesPath: *rulesPath,
		Follow:    *follow,
		DebugLog:  *debugLog,
	}
	if *execCmd {
		opts.Exec = flag.Args()
	} else {
		opts.Paths = flag.Args()
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tailspect: %v\n", err)
		return 1
	}
	return 0
}
