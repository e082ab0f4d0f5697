// Package rand produces random fixtures for tests: bytes, identifiers and repository paths
package rand

import (
	"bytes"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	onceSource  sync.Once
	rgen        *rand.Rand
	onceLetters sync.Once
	randMutex   sync.Mutex
	letters     []byte
)

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	return buf
}

// LetterBytes returns a random slice of bytes picked in the [0-9]|[a-z] range
func LetterBytes(n int) []byte {
	onceLetters.Do(makeLetters)
	buf := Bytes(n)
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return buf
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	return string(LetterBytes(n))
}

// Path returns a random repository path with some depth, e.g. "x3k/q0a/m2c" for depth 3
func Path(depth int) string {
	segments := make([]string, 0, depth)
	for i := 0; i < depth; i++ {
		segments = append(segments, LetterString(6))
	}
	return strings.Join(segments, "/")
}

// Intn returns a random int in [0, n)
func Intn(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n)
}

func seed() {
	src := rand.NewSource(time.Now().UnixNano())
	rgen = rand.New(src) // #nosec
}

func makeLetters() {
	// adds "a" to pad over 256 locations (0-9 U a-z makes up to 252 only and we want to cover the range of uint8)
	// so "a" is slightly more frequent than other signs
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}
