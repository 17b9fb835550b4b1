package main

import (
	"os"

	"github.com/nus3kit/nus3kit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
