package dynamo

import "sync"

// StatePool recycles fixed-length scratch vectors. Vectors of any other
// length are dropped on Put.
type StatePool struct {
	pool sync.Pool
	size int
}

func NewStatePool(stateSize int) *StatePool {
	return &StatePool{
		size: stateSize,
		pool: sync.Pool{
			New: func() interface{} {
				s := make(State, stateSize)
				return &s
			},
		},
	}
}

func (p *StatePool) Size() int { return p.size }

func (p *StatePool) Get() State {
	return *(p.pool.Get().(*State))
}

func (p *StatePool) Put(s State) {
	if len(s) == p.size {
		for i := range s {
			s[i] = 0
		}
		p.pool.Put(&s)
	}
}

func (p *StatePool) GetAndCopy(src State) State {
	dst := p.Get()
	copy(dst, src)
	return dst
}

// Pools hands out one StatePool per vector length.
type Pools struct {
	mu    sync.Mutex
	pools map[int]*StatePool
}

func (p *Pools) For(size int) *StatePool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pools == nil {
		p.pools = make(map[int]*StatePool)
	}
	sp, ok := p.pools[size]
	if !ok {
		sp = NewStatePool(size)
		p.pools[size] = sp
	}
	return sp
}
