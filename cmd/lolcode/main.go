// Command lolcode is the LOLCODE interpreter's CLI front end.
package main

import (
	"fmt"
	"os"

	"github.com/lolcode-go/lolcode/cmd/lolcode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
