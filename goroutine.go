package rgmpcore

import (
	"bytes"
	"runtime"
	"strconv"
)

// getGoroutineID parses the running goroutine's id out of its own stack
// trace, to detect reentrant calls from the same logical caller. There
// is no supported runtime API for this, but it is the idiomatic
// workaround for goroutine-identity-based reentrant locking, which is
// exactly what syncRegion needs.
func getGoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		panic("rgmpcore: could not parse goroutine id: " + err.Error())
	}
	return id
}
