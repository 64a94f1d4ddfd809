package mempool

import (
	"bytes"
	"sync"
)

// A simple pool for bytes.Buffer to reduce allocations on the image encoding
// hot path. Encoded placeholder PNGs cluster around a few kilobytes, so a
// single pool with a retention cap works well.

// maxRetainedCap is the largest buffer capacity the pool keeps. Buffers that
// grew beyond it (huge renders) are dropped instead of pinned in memory.
const maxRetainedCap = 1 << 20

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves an empty buffer from the pool. The caller must return
// it via PutBuffer when done.
func GetBuffer() *bytes.Buffer {
	buf, ok := bufferPool.Get().(*bytes.Buffer)
	if !ok {
		buf = new(bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. It is safe to pass nil.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetainedCap {
		return
	}
	bufferPool.Put(buf)
}
