// dayaim - A command-line daily planner for goals, tasks and habits
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package main

import (
	"os"

	"github.com/manav03panchal/dayaim/cmd"
	"github.com/manav03panchal/dayaim/internal/runtime"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(runtime.ExitCode(err))
	}
}
