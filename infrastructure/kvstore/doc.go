// Package kvstore provides ports.KVStore backends for the "storage"
// capability: an in-memory map, a YAML file and a SQL table.
package kvstore
