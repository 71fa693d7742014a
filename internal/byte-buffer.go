package internal

import "sync"

var bufPool = sync.Pool{New: func() interface{} {
	buf := make([]byte, 0, 1024)
	return &buf
}}

// ReserveByteBuffer fetches a byte slice of length 0 from an internal
// pool. The slice may have a capacity larger than 0 from previous use.
// Return it with ReleaseByteBuffer when done.
func ReserveByteBuffer() *[]byte {
	buf := bufPool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

// ReleaseByteBuffer returns a slice of bytes to the internal pool from
// which ReserveByteBuffer can fetch it again.
func ReleaseByteBuffer(buf *[]byte) {
	bufPool.Put(buf)
}
