package main

import (
	"github.com/vitalwave/ppgkit/cmd/ppgkit/commands"
)

func main() {
	commands.Execute()
}
