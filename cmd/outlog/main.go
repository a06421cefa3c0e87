package main

import (
	"context"
	"os"

	"outlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
