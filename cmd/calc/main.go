package main

import (
	"os"

	"github.com/rovshanmuradov/token-calc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
