// Package docparse parses HCL descriptor documents into descriptor objects.
//
// Parsing is driven by a fixed table of rules keyed on block path. Each rule
// names the descriptor type it instantiates and the accumulation method used
// to attach the finished child to its parent. The table is the document
// grammar: changing a path, target type, or accumulation method changes what
// documents the system accepts, so the table is built in one place and
// nowhere else.
//
// The engine is a stack machine shared process-wide. The rule table is built
// lazily at most once, and a single mutex spans push → walk → reset so only
// one parse executes at a time; the stack is reset even when a parse fails.
package docparse
