package main

import (
	"github.com/stitts-dev/xi-generator/internal/cli"
)

func main() {
	cli.Execute()
}
