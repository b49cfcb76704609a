// Package main provides the CLI entry point for dbdoc-go.
package main

import "os"

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr, nil))
}
