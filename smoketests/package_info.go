// Package smoketests defines the self-checking suite that the command-line
// runner executes. The specs here exercise the public definition vocabulary
// end to end: nested topics, fixtures threading an environment accumulator,
// cleanups, per-test timeouts, and author-defined params.
package smoketests
