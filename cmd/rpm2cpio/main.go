// Copyright IBM Corp. 2023, 2025

package main

import "github.com/hashicorp/go-rpm2cpio/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main start go-rpm2cpio cli `rpm2cpio`
func main() {
	cmd.Run(version, commit, date)
}
