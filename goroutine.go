package inject

import (
	"bytes"
	"runtime"
	"strconv"
)

// goid returns the current goroutine ID.
// Thread and request scopes use it to partition their storage per goroutine.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Stack dump starts with "goroutine <id> [running]:".
	field := buf[len("goroutine "):n]
	if i := bytes.IndexByte(field, ' '); i >= 0 {
		field = field[:i]
	}
	id, _ := strconv.ParseInt(string(field), 10, 64)
	return id
}
