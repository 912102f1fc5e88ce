package storage

import "context"

// PrefixedStore namespaces every key of an underlying store.
type PrefixedStore struct {
	store  KVStore
	prefix string
}

// Prefixed wraps store so that all keys start with prefix.
func Prefixed(store KVStore, prefix string) *PrefixedStore {
	return &PrefixedStore{store: store, prefix: prefix}
}

func (s *PrefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *PrefixedStore) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *PrefixedStore) SetMany(ctx context.Context, kv map[string]string) error {
	prefixed := make(map[string]string, len(kv))
	for k, v := range kv {
		prefixed[s.prefix+k] = v
	}
	return s.store.SetMany(ctx, prefixed)
}

func (s *PrefixedStore) Remove(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.store.Remove(ctx, prefixed...)
}
