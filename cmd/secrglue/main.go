// Command secrglue loads a secretariat admin page, runs its page scripts
// and drives the interactions named on the command line.
// Usage: go run ./cmd/secrglue -target http://localhost:8000/secr/areas/ -search jan -trace
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/raysh454/secrglue/internal/app"
	"github.com/raysh454/secrglue/internal/cli"
	"github.com/raysh454/secrglue/internal/logging"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "secrglue:", err)
		os.Exit(2)
	}

	logger := logging.NewWriterLogger("secrglue", os.Stderr)
	application := app.NewApplication(app.DefaultConfig(), args, logger, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("run failed", logging.Err(err))
		os.Exit(1)
	}
}
