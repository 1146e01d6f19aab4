package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root, a := newRootCmd()
	err := execute(ctx, root, a)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
