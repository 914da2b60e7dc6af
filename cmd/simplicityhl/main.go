package main

import (
	"fmt"
	"os"

	"github.com/elements-project/simplicityhl-go/cmd/simplicityhl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
