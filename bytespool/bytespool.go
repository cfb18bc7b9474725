// Package bytespool is a size classed []byte allocator backed by sync.Pool,
// used for frame headers and other short lived scratch buffers.
package bytespool

import (
	"sync"
)

type poolInfo struct {
	sz int
	p  *sync.Pool
}

func newPoolInfo(sz int) *poolInfo {
	return &poolInfo{
		sz: sz,
		p: &sync.Pool{New: func() interface{} {
			return make([]byte, 0, sz)
		}},
	}
}

var pools = []*poolInfo{
	newPoolInfo(8),
	newPoolInfo(16),
	newPoolInfo(64),
	newPoolInfo(256),
	newPoolInfo(1024),
	newPoolInfo(4 * 1024),
	newPoolInfo(16 * 1024),
	newPoolInfo(64 * 1024),
}

// Alloc returns a []byte of length sz from the smallest fitting class.
// Sizes beyond the largest class fall back to the heap.
func Alloc(sz int) []byte {
	if sz <= 0 {
		return nil
	}
	for _, pi := range pools {
		if sz <= pi.sz {
			return pi.p.Get().([]byte)[:sz]
		}
	}
	return make([]byte, sz)
}

// Free returns p to its class. Buffers not allocated by Alloc are ignored.
func Free(p []byte) {
	sz := cap(p)
	if sz <= 0 {
		return
	}
	for _, pi := range pools {
		if sz == pi.sz {
			pi.p.Put(p[:0])
			return
		}
	}
}
