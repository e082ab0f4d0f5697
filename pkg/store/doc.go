// Copyright © 2018 One Concern

// Package store defines the versioned repository collaborator used to persist objects.
//
// A repository is a tree of paths. Directories hold other nodes, files hold some content
// and a set of properties. Every commit produces a new immutable revision.
//
// Backends live in sub-packages: memory (immutable radix trees) and bdgr (badger).
// They share the edit validation implemented by Staging.
package store

//go:generate moq -out mockstore/repository_mock.go -pkg mockstore . Repository
//go:generate moq -out mockstore/transaction_mock.go -pkg mockstore . Transaction
