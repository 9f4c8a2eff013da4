package main

import "github.com/bamaas/cbactl/internal/cli"

func main() {
	cli.Execute()
}
