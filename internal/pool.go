package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds buffers used to encode trace events.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 128))
	},
}
