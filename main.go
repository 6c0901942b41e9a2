package main

import (
	"os"

	"github.com/shahriarislam71/kaf-tar-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
