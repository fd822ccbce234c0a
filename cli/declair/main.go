package main

import (
	"os"

	declaircmder "github.com/timasoft/declair/cmd/declair"
)

func main() {
	cmd := declaircmder.NewDeclairCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
