// Package install orchestrates fetching, dependency resolution, and
// building of AUR packages.
//
// # Overview
//
// The centerpiece is [Walker.Process]: a synchronous, depth-first walk
// over a package and its transitive dependencies. For each package it
// discards stale sources when forced, ensures a working copy exists,
// parses the build recipe, classifies each dependency (provided by the
// recipe itself, satisfiable from the system, already handled, or in need
// of its own walk), recurses into the unresolved ones, and finally builds.
// Because a dependency's walk finishes before its dependent's build
// starts, builds always execute in a valid dependency order.
//
// # Sessions
//
// All walk state lives in a [Session]: the set of packages already
// handled, the recursion stack used to detect dependency cycles, and the
// dependency edges observed along the way. One Session typically spans
// one program invocation, so a package requested twice (directly or as a
// shared dependency) is processed once. Walks are single-threaded; a
// Session must not be shared across goroutines.
//
// # Failure model
//
// Process separates fatal problems from per-package ones. Dependency
// cycles, fetch failures, and unreadable recipes return a non-nil error
// and abort the caller's whole batch. A failing build, or the user
// declining one, only yields a [Failed] or [Skipped] outcome; siblings
// and remaining roots still run. Failed packages are never marked
// completed, so a later request may retry them.
//
// # Upgrades
//
// [Scanner.Scan] compares installed foreign packages against the index
// and reports the ones with a strictly newer remote version, alongside
// packages missing from the index and versions it cannot order.
// [Walker.ProcessUpgrades] then feeds the candidates back through the
// walk, sharing one session with its completed set cleared at batch
// start.
package install
