// Package shadow binds a project's working directory to its shadow store.
//
// The shadow store is a bare repository at <base>/<project id>/. Every git
// invocation passes the store as --git-dir and the primary work tree as
// --work-tree, so files are read from where they live while history is
// written only into the store. The primary repository's .git directory is
// never touched.
//
// Repository location variables inherited from the environment (GIT_DIR,
// GIT_INDEX_FILE and friends, as set by git while running hooks) are
// dropped before each invocation and GIT_LITERAL_PATHSPECS=1 is set, so
// paths are never interpreted as globs.
package shadow
