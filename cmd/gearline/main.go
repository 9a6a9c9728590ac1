// Package main is the single-binary entrypoint for Gearline.
package main

import "github.com/gearline/gearline/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
