// Package icons resolves icon URLs to deduplicated icon rows and mirrors
// icon files into the local bucket.
//
// An icon URL carries a stable identity in its last two path segments
// (signature and numeric id). Ensure extracts it and creates the row
// idempotently; concurrent jobs referencing the same icon resolve the
// conflict at the storage layer instead of failing.
package icons
