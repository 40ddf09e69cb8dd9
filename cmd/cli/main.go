// algolia-monitor - Algolia index size change watcher
//
// Polls the record count of one Algolia index and prints what was added,
// updated, or deleted whenever the count moves past a threshold.
package main

import (
	"os"

	"github.com/EcomDev/algolia-monitor/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
