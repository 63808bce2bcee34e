// Command precedence validates, repairs and scores page-ordering updates.
//
//	precedence check  input.txt
//	precedence repair input.txt
//	precedence score  input.txt
//
// See ingest for the accepted input formats and config for settings.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
