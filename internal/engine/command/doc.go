// Package command implements the block command algebra: text update,
// indent and outdent, type conversion, split, combine and group reorder.
//
// Every command reads the current sequence from the paper, computes a new
// sequence and installs it through exactly one paper transaction. Commands
// never commit; the caller decides when a batch of commands is broadcast.
//
// Commands are total. A target block that is no longer in the paper turns
// the command into a no-op with a nil error. The only error a command
// reports for well-formed input is an unknown block type.
package command
