package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/rammap/hooking"
	"github.com/sarchlab/rammap/mapping"
)

// A ProgressBar tracks how many logical memories have been mapped. Register
// it as a hook on an assigner to advance it.
type ProgressBar struct {
	sync.Mutex
	ID        string
	Name      string
	StartTime time.Time
	Total     uint64
	Finished  uint64
	Shared    uint64
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Shared    uint64    `json:"shared"`
}

// IncrementFinished adds a certain amount to the finished elements.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Func advances the bar on every mapped memory and counts merges.
func (b *ProgressBar) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case mapping.HookPosMapped:
		b.IncrementFinished(1)
	case mapping.HookPosShared:
		b.Lock()
		b.Shared++
		b.Unlock()
	}
}

func (b *ProgressBar) snapshot() progressRsp {
	b.Lock()
	defer b.Unlock()

	return progressRsp{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
		Shared:    b.Shared,
	}
}
