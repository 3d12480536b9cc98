package main

import "github.com/pfrederiksen/wnba-box-scores/internal/cli"

func main() {
	cli.Execute()
}
