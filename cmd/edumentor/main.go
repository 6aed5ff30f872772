// Command edumentor is the operator CLI of the EduMentor data layer: it
// creates the schema, checks connectivity, and runs the account and lookup
// operations against the configured database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakif/edumentor/cmd/edumentor/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
