// Package provider contains translation Gateway implementations.
package provider

import "github.com/hanmaru/wordstep"

// Gateway is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Gateway = wordstep.Gateway
