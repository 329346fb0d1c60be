package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq uint64

// GenID returns a message id derived from the creation timestamp, with a
// small counter suffix so ids stay unique when several messages share one
// millisecond within a session.
func GenID() string {
	n := time.Now().UnixMilli()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("%d-%d", n, s)
}
