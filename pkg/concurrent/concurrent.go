// Package concurrent provides small fan-out/fan-in helpers over slices.
package concurrent

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element in its own goroutine and waits for
// all of them. The first error encountered is returned.
func ForEach[T any](items []T, action func(T) error) error {
	errGroup := errgroup.Group{}
	for _, item := range items {
		errGroup.Go(func() error {
			return action(item)
		})
	}
	return errGroup.Wait()
}

// Collect applies mapFn to every element in its own goroutine and waits for
// all of them, preserving order in the result slice.
func Collect[T any, R any](items []T, mapFn func(T) R) []R {
	out := make([]R, len(items))
	wg := sync.WaitGroup{}
	for idx, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[idx] = mapFn(item)
		}()
	}
	wg.Wait()
	return out
}
