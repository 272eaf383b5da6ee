// Package main provides the entry point for the gaslint CLI.
//
// gaslint is a static analysis tool that finds gas-inefficient patterns
// in Solidity sources and reports how much gas fixing them saves.
//
// Usage:
//
//	gaslint scan <path>
//	gaslint scan contracts/ --json
//
// See --help for all available options.
package main

// main is the entry point for gaslint.
func main() {
	Execute()
}
