// Command glmpv plays a media file with libmpv rendering into a GLFW
// window, in three variants of increasing complexity.
package main

import (
	"fmt"
	"os"
	"runtime"
)

// Build-time variables (set via ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func init() {
	// GLFW and the GL context belong to the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
