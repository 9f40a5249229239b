package main

import "github.com/qwofford/popper/internal/cli"

func main() {
	cli.Execute()
}
