package main

import "github.com/rustyeddy/indichart/internal/cli"

func main() {
	cli.Execute()
}
