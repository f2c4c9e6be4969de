package pool

import "sync"

// BufferPool hands out fixed-size read buffers.
type BufferPool struct {
	size int       // Length of every buffer.
	pool sync.Pool // Thread-safe pool of *[]byte.
}

// Creates a new buffer pool with a specified buffer size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Size returns the length of the buffers handed out by Get.
func (bp *BufferPool) Size() int {
	return bp.size
}

// Retrieves a buffer of exactly Size bytes from the pool.
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Returns a buffer to the pool.
func (bp *BufferPool) Put(buf *[]byte) {
	// Don't pool buffers resliced to a different length.
	if buf == nil || len(*buf) != bp.size {
		return
	}
	bp.pool.Put(buf)
}
