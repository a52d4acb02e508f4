package store

import (
	"sync"
)

// copyBufSize is the chunk size used when draining object bodies.
const copyBufSize = 64 * 1024

// bufPool reuses drain buffers across iterations to avoid excessive
// allocations at high worker counts.
var bufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, copyBufSize)
		return &buf
	},
}

func getBuffer() *[]byte {
	return bufPool.Get().(*[]byte)
}

func putBuffer(buf *[]byte) {
	bufPool.Put(buf)
}
