package util

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ulidMu      sync.Mutex
	ulidEntropy io.Reader

	// SignalNamespace seeds the name based uuids used as signal ids.
	SignalNamespace = uuid.MustParse("8f8f5d0e-3c1a-4b7e-9a59-3f0d1c6e2a10")
)

func init() {
	var seed int64
	_ = binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ulidEntropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewULID returns a time sortable id for the given instant. Ids created within the
// same millisecond stay lexicographically increasing.
func NewULID(at time.Time) string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(at.UTC()), ulidEntropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// NameUUID returns a version 5 uuid derived from the given parts. Equal parts always
// produce the same id.
func NameUUID(namespace uuid.UUID, parts ...string) uuid.UUID {
	size := 0
	for _, p := range parts {
		size += len(p) + 1
	}
	buf := make([]byte, 0, size)
	for i, p := range parts {
		if i > 0 {
			buf = append(buf, '|')
		}
		buf = append(buf, p...)
	}
	return uuid.NewSHA1(namespace, buf)
}
