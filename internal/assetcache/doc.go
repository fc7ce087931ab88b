// Package assetcache memoizes resolved story media per story ID.
//
// The cache is an explicitly constructed object rather than module-global
// state so tests and alternate composition roots can hold isolated
// instances. It has no TTL and no eviction; the story catalog is small and
// staleness is resolved only by an explicit Clear.
package assetcache
