package main

import (
	"os"

	"github.com/kunal/vetta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
