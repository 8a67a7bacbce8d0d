// Package main is the entry point for the odfuzzer CLI.
package main

import "odfuzzer/cmd"

func main() {
	cmd.Execute()
}
