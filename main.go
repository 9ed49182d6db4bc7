// main.go
//
// Entry point; CLI handling lives in the Cobra commands under cmd/

package main

import (
	"github.com/sheikhrachel/go-gol3d/cmd"
)

func main() {
	cmd.Execute()
}
