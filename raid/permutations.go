package raid

import "iter"

// Permutations yields every ordering of the indices 0..n-1 using Heap's algorithm.
// Each call restarts the sequence. The yielded slice is reused between steps;
// callers that keep an ordering must copy it. n = 0 yields one empty ordering.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n < 0 {
			return
		}
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		if !yield(perm) {
			return
		}
		c := make([]int, n)
		for i := 1; i < n; {
			if c[i] < i {
				if i%2 == 0 {
					perm[0], perm[i] = perm[i], perm[0]
				} else {
					perm[c[i]], perm[i] = perm[i], perm[c[i]]
				}
				if !yield(perm) {
					return
				}
				c[i]++
				i = 1
			} else {
				c[i] = 0
				i++
			}
		}
	}
}

// Factorial returns n! for small n; it is the number of routes for n targets.
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
