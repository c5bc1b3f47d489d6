package webserver

import (
	"strconv"
	"sync/atomic"
)

type requestCounter struct {
	lastId uint64
}

func (c *requestCounter) GetNextId() string {
	id := atomic.AddUint64(&c.lastId, 1)
	return "REQ-" + strconv.FormatUint(id, 10)
}
