// Package main is the entry point for the hivebridge CLI binary.
package main

import (
	"os"

	cli "hive-bridge/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
