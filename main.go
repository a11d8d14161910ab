// gpugrade scores GPU cloud offers and grades them from A to F.
package main

import (
	"github.com/huangsam/gpugrade/cmd"
	"github.com/huangsam/gpugrade/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error", err)
	}
}
