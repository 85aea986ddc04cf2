package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/doclens/doclens/internal/cmd"
)

func main() {
	err := fang.Execute(context.Background(), cmd.RootCmd)
	switch {
	case err == nil:
	case errors.Is(err, cmd.ErrGateFailed):
		os.Exit(1)
	default:
		os.Exit(2)
	}
}
