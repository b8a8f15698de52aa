// Package processors turns one source file into one destination file.
//
// There is one processor per classification kind, selected by a single
// switch in Process. Every processor reads its source once, transforms it
// in memory and writes the destination atomically, so a failing transform
// never leaves a partial or truncated file behind. Processors never decide
// where output goes: the destination path is computed by the caller.
package processors
