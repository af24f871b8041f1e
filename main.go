package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/tianmenglucky/lbe-installer/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Execute(ctx)
}
