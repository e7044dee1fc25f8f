// Package displayid mints the human-facing ids ("ANN1771598400000-3fa9c1")
// shown next to the durable UUIDs.
package displayid

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	Student      = "STU"
	Teacher      = "TCH"
	Fee          = "FEE"
	Event        = "EVT"
	Club         = "CLB"
	Announcement = "ANN"
	Request      = "REQ"
	Notification = "NTF"
)

// node tells replicas apart; the external_id columns are unique across all
// of them.
var node = uuid.NewString()[:6]

var (
	mu   sync.Mutex
	last int64
)

// New returns prefix, the current unix milliseconds and this process's node
// tag. The millisecond part is strictly increasing within a process, so two
// calls in the same millisecond still differ.
func New(prefix string) string {
	mu.Lock()
	n := time.Now().UnixMilli()
	if n <= last {
		n = last + 1
	}
	last = n
	mu.Unlock()

	return format(prefix, n, node)
}

func format(prefix string, ms int64, node string) string {
	return prefix + strconv.FormatInt(ms, 10) + "-" + node
}
