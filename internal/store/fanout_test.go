// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("fanOut", func() {
	It("should keep the order of the items", func(ctx SpecContext) {
		items := []int{5, 1, 4, 2, 3}
		results := fanOut(ctx, 0, items, func(_ context.Context, i int) (int, error) {
			time.Sleep(time.Duration(i) * time.Millisecond)
			return i * 10, nil
		}, func(int, error) {
			Fail("unexpected error")
		})
		Expect(results).To(Equal([]int{50, 10, 40, 20, 30}))
	})

	It("should skip failed items and report them", func(ctx SpecContext) {
		var failed []int
		results := fanOut(ctx, 2, []int{1, 2, 3, 4}, func(_ context.Context, i int) (int, error) {
			if i%2 == 0 {
				return 0, errors.New("even")
			}
			return i, nil
		}, func(i int, err error) {
			Expect(err).To(MatchError("even"))
			failed = append(failed, i)
		})
		Expect(results).To(Equal([]int{1, 3}))
		Expect(failed).To(ConsistOf(2, 4))
	})

	It("should bound the calls in flight", func(ctx SpecContext) {
		var inFlight, maxInFlight atomic.Int32
		items := make([]int, 20)
		results := fanOut(ctx, 3, items, func(_ context.Context, i int) (int, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				observed := maxInFlight.Load()
				if current <= observed || maxInFlight.CompareAndSwap(observed, current) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			return i, nil
		}, func(int, error) {})
		Expect(results).To(HaveLen(20))
		Expect(maxInFlight.Load()).To(BeNumerically("<=", 3))
	})

	It("should return an empty result for no items", func(ctx SpecContext) {
		results := fanOut(ctx, 1, []string(nil), func(context.Context, string) (string, error) {
			return "", nil
		}, func(string, error) {})
		Expect(results).To(BeEmpty())
		Expect(results).NotTo(BeNil())
	})
})
