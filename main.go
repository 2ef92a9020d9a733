// Package main is the entry point for the confreport CLI.
package main

import "confreport.dev/pkg/confreport/cmd"

func main() {
	cmd.Execute()
}
