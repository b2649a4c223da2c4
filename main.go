package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/js-imports-order/pkg/cmd"
)

func main() {
	info, _ := debug.ReadBuildInfo()
	if err := cmd.Execute(info); err != nil {
		os.Exit(1)
	}
}
