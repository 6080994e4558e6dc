// main is the entry point for the vitalis CLI.
package main

import (
	"github.com/lw2die/vitalis/cmd"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	// Close stores and flush profiles before any exit path.
	iocache.CloseStores()
	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
