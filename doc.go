// Package bandbook holds a small, fixed table of bands loaded once from
// application resources and looked up by ID.
//
// The bands come from two parallel string arrays, KeyNames and
// KeyDescriptions, read from a ResourceProvider. NewStore zips them into a
// Store where the band at index i has ID i+1. A Directory wraps a Store for
// lookups; Instance returns the process-wide Directory, loading it on the first
// call only.
//
// Resource providers for YAML/JSON files, compiled binary packs, SQLite
// databases, and S3 objects live in the sub-packages of resources.
package bandbook
