package crm

import "errors"

// ErrProviderMissing means the store was used without a live instance wired
// in. It is a programming error, not a runtime condition.
var ErrProviderMissing = errors.New("crm: store used outside provider")

// Use checks an injected store handle. Consumers hold a *Store that may be
// nil and call Use before touching it.
func Use(s *Store) (*Store, error) {
	if s == nil || !s.active() {
		return nil, ErrProviderMissing
	}
	return s, nil
}

// Must is Use for call sites that cannot continue without a store.
func Must(s *Store) *Store {
	st, err := Use(s)
	if err != nil {
		panic(err)
	}
	return st
}

// Do runs fn against the store. A Close racing with fn surfaces as
// ErrProviderMissing instead of a panic; any other panic propagates.
func Do(s *Store, fn func(*Store)) (err error) {
	st, err := Use(s)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrProviderMissing) {
				err = ErrProviderMissing
				return
			}
			panic(r)
		}
	}()
	fn(st)
	return nil
}
