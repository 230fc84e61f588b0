// Package nav builds and validates the navigation configuration of a
// documentation site: shared theme options plus an ordered sidebar of
// categories, each an ordered list of content references.
//
// A Config is produced once by Build (or Merge) and is read-only afterwards.
// Every accessor returns copies, so consumers can not mutate the sidebar
// another consumer sees.
package nav
