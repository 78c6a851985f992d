// Command runsheet works with runsheets offline: it segments raw text and replays
// recorded analyses through the ownership ledger without an analysis provider.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
