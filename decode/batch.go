package decode

import "unsafe"

// cacheLineBytes is the assumed CPU cache line size used to size batches
// so each worker's slice of input and output touches a disjoint,
// cache-line-aligned slab.
const cacheLineBytes = 64

// cacheLineAlignedUnitCount returns the smallest number of elementBytes
// that aligns to a cache-line boundary — i.e. the batch granularity, in
// elements, that makes one batch's footprint a multiple of
// cacheLineBytes for an array of that element size.
func cacheLineAlignedUnitCount(elementBytes uintptr) int {
	if elementBytes == 0 {
		return 1
	}
	size := int(elementBytes)

	return lcm(size, cacheLineBytes) / size
}

// gcd and lcm support computing the batch size B as the least common
// multiple of the input and output arrays' cache-line-aligned unit
// counts.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}

	return a / gcd(a, b) * b
}

// batchSize computes B, the interleaved batch size: the LCM of the
// cache-line-aligned unit counts of the reference array's element type and
// the output path array's element type.
func batchSize() int {
	inputUnit := cacheLineAlignedUnitCount(unsafe.Sizeof(LinearSegment{}))
	outputUnit := cacheLineAlignedUnitCount(unsafe.Sizeof(PathResult{}))

	return lcm(inputUnit, outputUnit)
}

// batchIndicesFor returns, in order, every segment index worker `t` of
// `numWorkers` owns under the interleaved fixed-size batch scheme:
// [t*B, t*B+B) ∪ [(t+N)*B, (t+N)*B+B) ∪ …, clipped to [0, total).
func batchIndicesFor(t, numWorkers, total, batch int) []int {
	var indices []int

	for base := t * batch; base < total; base += numWorkers * batch {
		end := base + batch
		if end > total {
			end = total
		}
		for i := base; i < end; i++ {
			indices = append(indices, i)
		}
	}

	return indices
}
