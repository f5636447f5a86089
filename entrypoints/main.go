package main

import (
	"github.com/Laisky/baseline-mcp/cmd"
)

func main() {
	cmd.Execute()
}
