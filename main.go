package main

import (
	"os"

	"github.com/kkm-horikawa/sqlpretty/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
