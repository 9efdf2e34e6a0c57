// Package main is the entry point for the smalipatch CLI.
package main

import "smalipatch.dev/pkg/smalipatch/cmd"

func main() {
	cmd.Execute()
}
