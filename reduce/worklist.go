package reduce

import (
	conq "github.com/enriquebris/goconcurrentqueue"

	"github.com/qreduce-team/qreduce-engine/core"
)

type worklist interface {
	Enqueue(*core.Operation) error
	Dequeue() (*core.Operation, error)
	GetLen() int
}

type conqFIFO struct {
	conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{
		FIFO: *conq.NewFIFO(),
	}
}

func (c *conqFIFO) Enqueue(op *core.Operation) error {
	return c.FIFO.Enqueue(op)
}

func (c *conqFIFO) Dequeue() (*core.Operation, error) {
	tmp, err := c.FIFO.Dequeue()
	if err != nil {
		return nil, err
	}
	return tmp.(*core.Operation), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}
