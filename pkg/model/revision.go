package model

import (
	"strconv"
	"strings"
)

// Revision identifies a commit in a repository
type Revision int64

const (
	// Head designates the most recent revision
	Head Revision = -1

	// InitialRevision is the empty tree every repository starts with
	InitialRevision Revision = 0

	headName = "HEAD"
)

// IsHead tells if this revision stands for the latest one
func (r Revision) IsHead() bool {
	return r < 0
}

func (r Revision) String() string {
	if r.IsHead() {
		return headName
	}
	return strconv.FormatInt(int64(r), 10)
}

// ParseRevision reads a revision number, HEAD or -1
func ParseRevision(s string) (Revision, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, headName) {
		return Head, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidRevision.Wrap(err)
	}
	if n < 0 {
		if n == int64(Head) {
			return Head, nil
		}
		return 0, ErrInvalidRevision.WrapMessage("negative revision %d", n)
	}
	return Revision(n), nil
}
