package main

import (
	"fmt"
	"os"

	"github.com/krazyTry/commons-abc-go/cmd/abcsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
