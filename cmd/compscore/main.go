// main is the entry point for the compscore CLI.
package main

import (
	"os"

	"github.com/recruitready/compscore/cmd"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/iocache"
)

func main() {
	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarning("Failed to stop profiling: " + profErr.Error())
	}

	if closeErr := iocache.CloseStores(); closeErr != nil {
		contract.LogWarning("Failed to close memo store: " + closeErr.Error())
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	os.Exit(0)
}
