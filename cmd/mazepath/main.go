// Command mazepath solves turn-weighted mazes from files, or serves the
// solver over HTTP.
//
//	mazepath solve maze1.txt maze2.txt
//	mazepath inspect --draw maze.txt
//	mazepath serve --addr :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
