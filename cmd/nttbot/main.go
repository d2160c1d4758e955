package main

import "github.com/Tommie03/NTTBot/internal/cli"

func main() {
	cli.Execute()
}
