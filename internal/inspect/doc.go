// Package inspect renders blot and surface trees as JSON for debugging.
//
// Views carry the owned node id of every blot, so a blot tree dump and a
// surface tree dump can be lined up by id. Output is indented with
// tidwall/pretty and optionally colored for terminals.
package inspect
