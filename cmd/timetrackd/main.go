package main

import "github.com/pfirsich/timetrackd/internal/cli"

func main() {
	cli.Execute()
}
