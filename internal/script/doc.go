// Package script runs Lua scenarios against a surface tree and its scroll.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are opened, and the functions that load code from disk
// or strings are removed. Each run is bounded by a timeout.
//
// Bind installs two globals:
//
//	surface.root()            -- root node
//	surface.paragraph(text)   -- append a block with one text node, returns the text node
//	surface.element(tag)      -- create a detached element
//	surface.text(data)        -- create a detached text node
//	surface.deliver()         -- deliver queued records, returns the count
//	surface.pending()         -- number of queued records
//
//	scroll.sync()             -- drain and apply pending records
//	scroll.insert_at(i, s [, value])
//	scroll.delete_at(i, n)
//	scroll.format_at(i, n, name, value)
//	scroll.length()
//	scroll.text()
//	scroll.dump()             -- blot tree as JSON
//	scroll.query(path)        -- gjson path over the dump
//
// Nodes are userdata with the methods id, tag, text, set_text, split,
// append, append_text, insert_before, remove, set_attr, attr, parent,
// children.
package script
