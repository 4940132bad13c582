// Package main is the gatekeep admin CLI. It works directly against the
// database configured by the AUTH_* environment variables.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
