package main

import (
	"github.com/hyeok-dev/dicearena/internal/cli"
)

func main() {
	cli.Execute()
}
