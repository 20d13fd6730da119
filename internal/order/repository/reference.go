package repository

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"
)

// refCounter is seeded randomly at startup so restarts do not replay the same
// counter values within a second.
var refCounter uint32

func init() {
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err == nil {
		refCounter = binary.BigEndian.Uint32(seed[:])
	}
}

// NewReference builds a ledger reference code: KNOX, the unix seconds of the
// submission instant, and a four-digit per-process counter. The counter keeps
// same-second submissions distinct; separate processes writing to the same
// sheet still share only the wall clock.
func NewReference(t time.Time) string {
	n := atomic.AddUint32(&refCounter, 1)
	return fmt.Sprintf("KNOX%d%04d", t.Unix(), n%10000)
}
