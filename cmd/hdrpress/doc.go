// Package main hosts the hdrpress CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the encode pipeline plus its two
// analysis halves (crop scanning and HDR metadata probing) as standalone
// commands, alongside run history inspection and configuration scaffolding.
// It centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
package main
