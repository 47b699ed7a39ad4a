// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fanOut calls fn for every item with at most limit calls in flight. Results keep
// the order of items. Failed items are passed to onErr and left out.
func fanOut[T, R any](
	ctx context.Context,
	limit int,
	items []T,
	fn func(context.Context, T) (R, error),
	onErr func(T, error),
) []R {
	results := make([]R, len(items))
	succeeded := make([]bool, len(items))

	var mu sync.Mutex
	g := &errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			result, err := fn(ctx, item)
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				onErr(item, err)
				return nil
			}
			results[i] = result
			succeeded[i] = true
			return nil
		})
	}
	// the workers never return errors
	_ = g.Wait()

	out := make([]R, 0, len(items))
	for i, ok := range succeeded {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}
