package main

import "portfolio-api/internal/cli"

func main() {
	cli.Execute()
}
