package main

import "trasloco/cmd/trasloco-cli/cmd"

func main() {
	cmd.Execute()
}
