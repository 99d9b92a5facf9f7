package main

import "github.com/tmuxtop/tmuxtop/cmd/tmuxtop/commands"

func main() {
	commands.Execute()
}
