package candidates

import "iter"

// Subsets yields every subset of xs with at most maxSize elements, smallest first
// Subsets larger than maxSize are never built, so callers whose filter is
// monotone in subset size can prune the power set by passing the largest size
// they accept. Yielded slices are reused between iterations; copy to retain
func Subsets[T any](xs []T, maxSize int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if maxSize > len(xs) {
			maxSize = len(xs)
		}
		buf := make([]T, 0, max(maxSize, 0))
		for size := 0; size <= maxSize; size++ {
			if !combinations(xs, 0, size, buf[:0], yield) {
				return
			}
		}
	}
}

// combinations emits all size-k picks of xs[from:] appended to prefix, in index order
func combinations[T any](xs []T, from, k int, prefix []T, yield func([]T) bool) bool {
	if k == 0 {
		return yield(prefix)
	}
	for i := from; i <= len(xs)-k; i++ {
		if !combinations(xs, i+1, k-1, append(prefix, xs[i]), yield) {
			return false
		}
	}
	return true
}

// Product yields the Cartesian product of groups, one element per group, in
// lexicographic order. An empty groups list yields a single empty tuple; any
// empty group yields nothing. Yielded slices are reused between iterations
func Product[T any](groups [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, g := range groups {
			if len(g) == 0 {
				return
			}
		}
		idx := make([]int, len(groups))
		tuple := make([]T, len(groups))
		for {
			for i, g := range groups {
				tuple[i] = g[idx[i]]
			}
			if !yield(tuple) {
				return
			}
			// odometer increment from the rightmost group
			i := len(groups) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(groups[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
