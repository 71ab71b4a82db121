// Package storage is a minimal key/value object store abstraction used to
// archive incident reports.
//
//	var store storage.Store = storage.NewDir("./tmp/incidents")
//	err := store.Put(ctx, "incidents/2026/01/02/abc.json", body, "application/json")
//
// Keys are slash separated and relative. Dir maps them onto the local
// filesystem; integration/storage/s3 maps them onto bucket objects.
package storage
