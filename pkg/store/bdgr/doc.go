// Copyright © 2018 One Concern

// Package bdgr implements a versioned repository persisted in a badger key-value store.
//
// Every node version is kept under its own key, suffixed by the revision which produced it:
//
//	node:<path>\x00<revision, big endian>  ->  JSON node record
//	rev:<revision, big endian>             ->  JSON commit info
//	meta:uuid, meta:head
//
// Reading a node at some revision seeks the greatest key at or before this revision.
package bdgr
