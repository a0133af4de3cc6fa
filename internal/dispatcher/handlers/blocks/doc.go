// Package blocks exposes the block commands as dispatcher actions.
//
// Every command of the engine's command table is reachable as
// "block.<name>", for example "block.indent" or "block.moveTo". The
// handler stages the command's writes and leaves the commit to the host.
//
// Arguments are read from the action:
//
//	block.updateText    Args.Text
//	block.turnInto      Args.Type, Extra (attribute overrides)
//	block.moveTo        Args.Block (target), Args.Dest, Extra["placement"]
package blocks
