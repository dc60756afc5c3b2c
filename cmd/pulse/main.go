// main is the entry point for the pulse CLI.
package main

import (
	"github.com/oss-pulse/pulse/cmd"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/internal/iocache"
)

func main() {
	// Stores are initialized lazily by command setup; close whatever was
	// opened on the way out.
	defer iocache.CloseCaching()

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		iocache.CloseCaching()
		contract.LogFatal("Command failed", err)
	}
}
