package main

import (
	"os"

	"github.com/XSaadiX/Quiz-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
