// twinctl reads the member sheet from the command line: list members and
// coaches, or print one member's dashboard without running the server.
//
// Usage:
//
//	twinctl members --credentials key.json
//	twinctl coaches --file export.xlsx
//	twinctl dashboard A1 --file export.csv --json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
