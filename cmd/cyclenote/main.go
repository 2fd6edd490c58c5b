package main

import "github.com/terraincognita07/cyclenote/internal/cli"

func main() {
	cli.Execute()
}
