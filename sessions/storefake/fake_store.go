package storefake

import (
	"context"
	"sync"

	"github.com/jrsteele09/appeals-client/sessions"
)

var _ sessions.Store = (*FakeStore)(nil)

// Op is one recorded store mutation
type Op struct {
	Kind  string // "set" or "delete"
	Key   string
	Value string
}

// FakeStore is an in-memory store that records mutations and can be told to fail per key
type FakeStore struct {
	values  map[string]string
	ops     []Op
	failSet map[string]error
	failDel map[string]error
	lock    sync.Mutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		values:  make(map[string]string),
		failSet: make(map[string]error),
		failDel: make(map[string]error),
	}
}

// Seed writes values without recording them as operations
func (f *FakeStore) Seed(values map[string]string) *FakeStore {
	f.lock.Lock()
	defer f.lock.Unlock()
	for k, v := range values {
		f.values[k] = v
	}
	return f
}

func (f *FakeStore) FailSet(key string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failSet[key] = err
}

func (f *FakeStore) FailDelete(key string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failDel[key] = err
}

func (f *FakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *FakeStore) Set(_ context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.failSet[key]; err != nil {
		return err
	}
	f.values[key] = value
	f.ops = append(f.ops, Op{Kind: "set", Key: key, Value: value})
	return nil
}

func (f *FakeStore) Delete(_ context.Context, keys ...string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	for _, key := range keys {
		if err := f.failDel[key]; err != nil {
			return err
		}
		delete(f.values, key)
		f.ops = append(f.ops, Op{Kind: "delete", Key: key})
	}
	return nil
}

// Ops returns a copy of the recorded mutations
func (f *FakeStore) Ops() []Op {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Op(nil), f.ops...)
}

// Values returns a copy of the current contents
func (f *FakeStore) Values() map[string]string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Len reports how many keys are currently stored
func (f *FakeStore) Len() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.values)
}
