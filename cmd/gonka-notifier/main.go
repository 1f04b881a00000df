package main

import "github.com/pkolbas/gonka-notifier/internal/cli"

func main() {
	cli.Execute()
}
