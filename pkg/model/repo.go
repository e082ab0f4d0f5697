package model

import "time"

// RepositoryInfo describes a repository
type RepositoryInfo struct {
	Root string   `json:"root" yaml:"root"`
	UUID string   `json:"uuid" yaml:"uuid"`
	Head Revision `json:"head" yaml:"head"`
}

// CommitInfo describes a revision produced by a commit
type CommitInfo struct {
	Revision  Revision  `json:"revision" yaml:"revision"`
	TxnID     string    `json:"txn" yaml:"txn"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
