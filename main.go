// Package main is the entry point for the elosense CLI, which samples
// ranked ladders, aggregates performance benchmarks, and grades matches.
package main

import "github.com/vinicius-m-santos/elosense-sub000/cmd"

func main() {
	cmd.Execute()
}
