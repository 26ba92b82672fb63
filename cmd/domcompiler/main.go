package main

import "dom-compiler/internal/cli"

func main() {
	cli.Execute()
}
