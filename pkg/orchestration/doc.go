// Package orchestration drives a run: it builds the filter chain, loads the
// module set, resolves the header, picks the run mode and renders every
// output stream, releasing each stream and writer on every path.
//
// A run checks, in order: list sources, the loaded module count, the
// header file. Only then is any stream opened.
package orchestration
