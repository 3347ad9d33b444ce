package main

import (
	"os"

	"github.com/hosgoru/vugraph-archive/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
