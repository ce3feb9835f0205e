package main

import "tarjetitas/cmd/tarjetitas-cli/cmd"

func main() {
	cmd.Execute()
}
