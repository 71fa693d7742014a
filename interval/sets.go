package interval

import (
	"sort"

	"github.com/exascience/pargo/parallel"
	psort "github.com/exascience/pargo/sort"
)

// SortByBegin sorts a slice of Interval by Begin position.
func SortByBegin(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Begin < intervals[j].Begin
	})
}

type stableIntervalSorter []Interval

func (s stableIntervalSorter) SequentialSort(i, j int) {
	SortByBegin(s[i:j])
}

func (s stableIntervalSorter) NewTemp() psort.StableSorter {
	return stableIntervalSorter(make([]Interval, len(s)))
}

func (s stableIntervalSorter) Len() int {
	return len(s)
}

func (s stableIntervalSorter) Less(i, j int) bool {
	return s[i].Begin < s[j].Begin
}

func (s stableIntervalSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableIntervalSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelSortByBegin sorts a slice of Interval by Begin position using
// a parallel stable sort.
func ParallelSortByBegin(intervals []Interval) {
	psort.StableSort(stableIntervalSorter(intervals))
}

// Extend makes interval1 larger if it overlaps with interval2, by
// storing max(interval1.End, interval2.End) in interval1.End;
// otherwise, interval1 remains unchanged. Returns true if the two
// intervals were merged, false otherwise. Intervals on different
// chromosomes or strands never merge. interval2.Begin >= interval1.Begin
// must be true before calling Extend.
func (interval1 *Interval) Extend(interval2 Interval) bool {
	if interval1.Chrom != interval2.Chrom || interval1.Strand != interval2.Strand {
		return false
	}
	if interval2.Begin > interval1.End {
		return false
	}
	if interval2.End > interval1.End {
		interval1.End = interval2.End
	}
	return true
}

// Flatten merges overlapping intervals into larger intervals.
// intervals must share a chromosome and strand and be sorted by Begin
// before calling Flatten. The resulting slice is sorted by Begin, and
// no two intervals in the result overlap with each other. The result
// shares memory with the intervals argument.
func Flatten(intervals []Interval) []Interval {
	for i, n := 0, len(intervals)-1; i < n; i++ {
		if intervals[i].Extend(intervals[i+1]) {
			n++
			for j := i + 1; j < n; j++ {
				if !intervals[i].Extend(intervals[j]) {
					i++
					intervals[i] = intervals[j]
				}
			}
			return intervals[:i+1]
		}
	}
	return intervals
}

const parallelFlattenGrainSize = 0x1000

// ParallelFlatten merges overlapping intervals into larger intervals,
// using a parallel algorithm. intervals must share a chromosome and
// strand and be sorted by Begin before calling ParallelFlatten.
// The result shares memory with the intervals argument.
func ParallelFlatten(intervals []Interval) []Interval {
	if len(intervals) < parallelFlattenGrainSize {
		return Flatten(intervals)
	}
	half := len(intervals) >> 1
	left, right := intervals[:half], intervals[half:]
	parallel.Do(
		func() { left = ParallelFlatten(left) },
		func() { right = ParallelFlatten(right) },
	)
	for len(right) > 0 && left[len(left)-1].Extend(right[0]) {
		right = right[1:]
	}
	return append(left, right...)
}

// AnyOverlap determines whether the given query interval overlaps with
// any of the given intervals. intervals must be flattened and sorted by
// Begin, and share the query's chromosome and strand.
func AnyOverlap(intervals []Interval, query Interval) bool {
	for left, right := 0, len(intervals)-1; left <= right; {
		mid := (left + right) / 2
		switch {
		case intervals[mid].Begin >= query.End:
			right = mid - 1
		case intervals[mid].End <= query.Begin:
			left = mid + 1
		default:
			return intervals[mid].Overlaps(query)
		}
	}
	return false
}

// Intersect returns the subslice of intervals whose ranges overlap with
// the given query interval. intervals must be flattened and sorted by
// Begin, and share the query's chromosome and strand.
func Intersect(intervals []Interval, query Interval) []Interval {
	n := len(intervals)
	return intervals[sort.Search(n, func(i int) bool {
		return intervals[i].End > query.Begin
	}):sort.Search(n, func(i int) bool {
		return intervals[i].Begin >= query.End
	})]
}
