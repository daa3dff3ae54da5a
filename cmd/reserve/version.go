/* Copyright (c) 2025 David Bulkow */

package main

// overridden at build time with -ldflags "-X main.GitHash=..."
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)
