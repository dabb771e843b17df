// Package framework implements a hierarchical test-definition and execution
// engine designed to run inside a single runtime context and report results
// across a trust boundary to a hosting harness.
//
// The general model is:
//
// 1. Test-authoring code builds a tree of topics and tests during a
// synchronous definition pass, using the vocabulary handed out by NewSpec
// (Describe/It/Before/Defer).
//
// 2. A Suite composes one or more Specs and runs them strictly sequentially,
// either walking every tree in full or jumping to a single test identified by
// a structural Address taken from ambient query parameters.
//
// 3. For every test, the topic chain's fixtures are folded into a fresh
// execution environment, the test implementation runs under an optional
// deadline, cleanups run unconditionally, and the outcome is reported both to
// a console-style reporter and, in a structurally-cloneable projection, to a
// result sink on the other side of the boundary.
//
// Nothing in this package is concurrent from the caller's point of view: no
// two tests ever overlap within one Suite.
package framework
