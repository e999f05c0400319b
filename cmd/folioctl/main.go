// Command folioctl drives the folio API from a terminal: it lists and submits
// reviews, shows testimonials, switches the accent colour and reads the
// contact inbox.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
