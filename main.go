package main

import "marquee/internal/cli"

func main() {
	cli.Execute()
}
