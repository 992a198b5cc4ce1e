package journal

import (
	cryptorand "crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	idMu      sync.Mutex
	idEntropy io.Reader = ulid.Monotonic(cryptorand.Reader, 0)
)

// NewMethodID returns a ULID string. IDs created in the same millisecond
// still sort in creation order.
func NewMethodID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), idEntropy).String()
}
