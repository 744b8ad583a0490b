// farmctl tareas de operación: migraciones, alta del farm manager e
// importación de producción desde CSV.
//
// Uso:
//
//	farmctl migrate up|down
//	farmctl seed-manager --email boss@farm.test --password ******** --username boss
//	farmctl import-production produccion.csv [--latin1] [--comma ';'] --user <id>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
