// Package syncer mirrors the on-disk content of tracked roots into the
// shadow index.
//
// A sync walks every tracked root, compares the result with the paths
// recorded in the shadow index and stages the difference:
//
//   - Added: on disk under a root, not in the index
//   - Modified: in both, content differs (as reported by git diff-files)
//   - Deleted: in the index, no longer on disk under any root
//
// Ignore rules of the primary repository are not consulted. Staging happens
// on a copy of the index which replaces the real one only when every step
// succeeded, so a failed sync leaves the index as it was.
//
// After staging, deleted and added paths that git pairs as renames (at the
// configured similarity threshold) are reported as Renamed instead.
package syncer
