package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/content-types/pkg/contenttype"
)

type callback struct {
	action   contenttype.Action
	filter   contenttype.Filter
	priority int
	argCount int
	seq      int
}

// Dispatcher implements contenttype.Dispatcher in process. Callbacks run in
// ascending priority; callbacks with equal priority run in the order they
// were added.
type Dispatcher struct {
	mu    sync.RWMutex
	hooks map[string][]callback
	seq   int
}

var _ contenttype.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		hooks: make(map[string][]callback),
	}
}

// AddAction attaches fn to the action name
func (d *Dispatcher) AddAction(name string, fn contenttype.Action, priority, argCount int) {
	d.add(name, callback{action: fn, priority: priority, argCount: argCount})
}

// AddFilter attaches fn to the filter name
func (d *Dispatcher) AddFilter(name string, fn contenttype.Filter, priority, argCount int) {
	d.add(name, callback{filter: fn, priority: priority, argCount: argCount})
}

func (d *Dispatcher) add(name string, cb callback) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	cb.seq = d.seq
	chain := append(d.hooks[name], cb)
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].priority != chain[j].priority {
			return chain[i].priority < chain[j].priority
		}
		return chain[i].seq < chain[j].seq
	})
	d.hooks[name] = chain
}

// Has reports whether any callback is attached to name
func (d *Dispatcher) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.hooks[name]) > 0
}

// Priorities returns the priorities attached to name in run order
func (d *Dispatcher) Priorities(name string) []int {
	chain := d.chain(name)
	out := make([]int, len(chain))
	for i, cb := range chain {
		out[i] = cb.priority
	}
	return out
}

// DoAction runs the actions attached to name. The first error stops the chain.
func (d *Dispatcher) DoAction(ctx context.Context, name string, args ...any) error {
	chain := d.chain(name)
	if len(chain) == 0 {
		return nil
	}

	hctx := contenttype.NewHookContext(ctx)
	for _, cb := range chain {
		if cb.action == nil {
			continue
		}
		if err := cb.action(hctx, limit(args, cb.argCount)...); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

// ApplyFilters passes value through the filters attached to name and returns
// the result. On error the value from before the failing filter is returned.
func (d *Dispatcher) ApplyFilters(ctx context.Context, name string, value any, args ...any) (any, error) {
	chain := d.chain(name)
	if len(chain) == 0 {
		return value, nil
	}

	hctx := contenttype.NewHookContext(ctx)
	current := value
	for _, cb := range chain {
		if cb.filter == nil {
			continue
		}
		next, err := cb.filter(hctx, current, limit(args, cb.argCount-1)...)
		if err != nil {
			return current, err
		}
		current = next
		if hctx.StopChain {
			break
		}
	}
	return current, nil
}

func (d *Dispatcher) chain(name string) []callback {
	d.mu.RLock()
	defer d.mu.RUnlock()

	chain := make([]callback, len(d.hooks[name]))
	copy(chain, d.hooks[name])
	return chain
}

func limit(args []any, n int) []any {
	if n <= 0 {
		return nil
	}
	if n < len(args) {
		return args[:n]
	}
	return args
}
