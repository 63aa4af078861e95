//go:build js && wasm

package memory

import (
	"errors"
	"fmt"
	"syscall/js"
)

// LocalStorage is a KV over the browser's window.localStorage.
type LocalStorage struct {
	storage js.Value
}

func NewLocalStorage() (*LocalStorage, error) {
	s := js.Global().Get("localStorage")
	if s.IsUndefined() || s.IsNull() {
		return nil, errors.New("localStorage unavailable")
	}
	return &LocalStorage{storage: s}, nil
}

func (s *LocalStorage) Get(key string) (data []byte, err error) {
	defer recoverJS(&err)
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return nil, ErrNotFound
	}
	return []byte(v.String()), nil
}

// Set can fail when the origin's storage quota is exhausted.
func (s *LocalStorage) Set(key string, value []byte) (err error) {
	defer recoverJS(&err)
	s.storage.Call("setItem", key, string(value))
	return nil
}

// recoverJS turns a thrown JS exception into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("localStorage: %s", jsErr.Error())
			return
		}
		*err = fmt.Errorf("localStorage: %v", r)
	}
}
