package resource

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Internal failures get a ULID trace id so a client-visible envelope can be
// correlated with the server-side log record without leaking the cause.

var (
	traceEntropyMu sync.Mutex
	traceEntropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

func newTraceID() string {
	traceEntropyMu.Lock()
	defer traceEntropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), traceEntropy).String()
}
