package transfer

import "sync"

// 按尺寸复用传输缓冲区, 尺寸通常只有一两种(配置的buffer_size)
var pools sync.Map // map[int]*sync.Pool

func getBuffer(size int) *[]byte {
	v, ok := pools.Load(size)
	if !ok {
		v, _ = pools.LoadOrStore(size, &sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		})
	}
	return v.(*sync.Pool).Get().(*[]byte)
}

func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	v, ok := pools.Load(cap(*buf))
	if !ok {
		return
	}
	*buf = (*buf)[:cap(*buf)]
	v.(*sync.Pool).Put(buf)
}
