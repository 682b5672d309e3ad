//go:build !ios && !android && (amd64 || arm64)

// Command pmgo renders projectM presets driven by an audio file or live
// input, with a terminal control panel and an optional NATS control bridge.
//
// Usage:
//
//	pmgo version
//	pmgo presets [-config file] <dir>...
//	pmgo run [-config file] [flags]
package main

import (
	"fmt"
	"os"
	"runtime"
)

// OpenGL contexts are bound to an OS thread; keep main on the first one.
func init() {
	runtime.LockOSThread()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  version   print library versions")
	fmt.Fprintln(os.Stderr, "  presets   list the presets found in directories")
	fmt.Fprintln(os.Stderr, "  run       render presets")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		err = versionCmd(os.Args[2:])
	case "presets":
		err = presetsCmd(os.Args[2:])
	case "run":
		err = runCmd(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pmgo: %v\n", err)
		os.Exit(1)
	}
}
