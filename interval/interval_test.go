package interval

import (
	"math/rand"
	"testing"
)

func iv(begin, end int32) Interval {
	return Interval{Chrom: "chr1", Begin: begin, End: end, Strand: '+'}
}

func TestNew(t *testing.T) {
	if _, err := New("chr1", 10, 20, '+'); err != nil {
		t.Error("New failed")
	}
	if _, err := New("chr1", 10, 20, 'x'); err == nil {
		t.Error("New invalid strand failed")
	}
	if _, err := New("chr1", 20, 10, '+'); err == nil {
		t.Error("New inverted bounds failed")
	}
	if ival, err := New("chr1", 10, 10, '-'); err != nil || !ival.Empty() {
		t.Error("New empty interval failed")
	}
}

func TestParse(t *testing.T) {
	if ival, err := Parse("chr1"); err != nil || ival != (Interval{"chr1", 0, MaxEnd, '+'}) {
		t.Error("Parse whole chrom failed")
	}
	if ival, err := Parse("-chr1"); err != nil || ival != (Interval{"chr1", 0, MaxEnd, '-'}) {
		t.Error("Parse reverse strand failed")
	}
	if ival, err := Parse("chr1:1000"); err != nil || ival != (Interval{"chr1", 1000, 1001, '+'}) {
		t.Error("Parse single position failed")
	}
	if ival, err := Parse("chr1:1000+"); err != nil || ival != (Interval{"chr1", 1000, MaxEnd, '+'}) {
		t.Error("Parse end of chrom failed")
	}
	if ival, err := Parse("chr1:1,000-2,000"); err != nil || ival != (Interval{"chr1", 1000, 2000, '+'}) {
		t.Error("Parse digit separators failed")
	}
	if ival, err := Parse("+chr1:1000-2000"); err != nil || ival != (Interval{"chr1", 1000, 2000, '+'}) {
		t.Error("Parse forward strand failed")
	}
	if _, err := Parse("chr1:2000-1000"); err == nil {
		t.Error("Parse inverted bounds failed")
	}
	if _, err := Parse("chr1:x-2000"); err == nil {
		t.Error("Parse invalid begin failed")
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, text := range []string{"+chr1:1000-2000", "-chrX:0-2147483647", "+1:17-17"} {
		ival, err := Parse(text)
		if err != nil || ival.String() != text {
			t.Errorf("Parse/String round trip of %v failed", text)
		}
	}
}

func TestOverlapsContains(t *testing.T) {
	if !iv(10, 20).Overlaps(iv(19, 30)) {
		t.Error("Overlaps 1 failed")
	}
	if iv(10, 20).Overlaps(iv(20, 30)) {
		t.Error("Overlaps adjacent failed")
	}
	if iv(10, 20).Overlaps(Interval{"chr2", 10, 20, '+'}) {
		t.Error("Overlaps chrom mismatch failed")
	}
	if iv(10, 20).Overlaps(Interval{"chr1", 10, 20, '-'}) {
		t.Error("Overlaps strand mismatch failed")
	}
	if !iv(10, 30).Contains(iv(15, 25)) {
		t.Error("Contains 1 failed")
	}
	if !iv(10, 30).Contains(iv(10, 30)) {
		t.Error("Contains self failed")
	}
	if iv(10, 30).Contains(iv(5, 25)) {
		t.Error("Contains 2 failed")
	}
	if a, b := iv(10, 30), iv(15, 25); a.Contains(b) && !a.Overlaps(b) {
		t.Error("Contains implies Overlaps failed")
	}
}

func TestSpanWith(t *testing.T) {
	span, err := iv(10, 20).SpanWith(iv(30, 40))
	if err != nil || span != iv(10, 40) {
		t.Error("SpanWith failed")
	}
	if !span.Contains(iv(10, 20)) || !span.Contains(iv(30, 40)) {
		t.Error("SpanWith coverage failed")
	}
	if _, err := iv(10, 20).SpanWith(Interval{"chr2", 30, 40, '+'}); err == nil {
		t.Error("SpanWith chrom mismatch failed")
	}
	if _, err := iv(10, 20).SpanWith(Interval{"chr1", 30, 40, '-'}); err == nil {
		t.Error("SpanWith strand mismatch failed")
	}
}

func TestExpandWith(t *testing.T) {
	if iv(100, 200).ExpandWith(50) != iv(50, 250) {
		t.Error("ExpandWith failed")
	}
	if iv(10, 200).ExpandWith(50) != iv(0, 250) {
		t.Error("ExpandWith begin saturation failed")
	}
	if iv(100, MaxEnd-10).ExpandWith(50) != iv(50, MaxEnd) {
		t.Error("ExpandWith end saturation failed")
	}
}

func TestLess(t *testing.T) {
	ordered := []Interval{
		{"chr1", 10, 20, '+'},
		{"chr1", 10, 30, '+'},
		{"chr1", 10, 30, '-'},
		{"chr1", 15, 20, '+'},
		{"chr2", 5, 10, '+'},
	}
	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			if (i < j) != ordered[i].Less(ordered[j]) {
				t.Errorf("Less %v %v failed", i, j)
			}
		}
	}
}

func intervalsEqual(intervals1, intervals2 []Interval) bool {
	if len(intervals1) != len(intervals2) {
		return false
	}
	for i, interval1 := range intervals1 {
		if interval1 != intervals2[i] {
			return false
		}
	}
	return true
}

func makeLargeIntervalsSlice() (result []Interval) {
	result = make([]Interval, 0x30000)
	for i := range result {
		result[i].Chrom = "chr1"
		result[i].Strand = '+'
	}
	result[0].Begin = 0
	result[0].End = 3
	for i := 1; i < len(result); i++ {
		if rand.Intn(100) < 20 {
			result[i].Begin = result[i-1].End - 1
		} else {
			result[i].Begin = result[i-1].End + 1
		}
		result[i].End = result[i].Begin + 3
	}
	return result
}

func TestFlatten(t *testing.T) {
	if Flatten(nil) != nil {
		t.Error("empty Flatten failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 3), iv(3, 4)}), []Interval{iv(2, 4)}) {
		t.Error("Flatten 1 failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 3), iv(4, 5)}), []Interval{iv(2, 3), iv(4, 5)}) {
		t.Error("Flatten 2 failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 4), iv(3, 5), iv(4, 6)}), []Interval{iv(2, 6)}) {
		t.Error("Flatten 3 failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 4), iv(3, 5), iv(4, 6), iv(7, 9)}), []Interval{iv(2, 6), iv(7, 9)}) {
		t.Error("Flatten 4 failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 3), iv(3, 4), iv(5, 6), iv(6, 7)}), []Interval{iv(2, 4), iv(5, 7)}) {
		t.Error("Flatten 5 failed")
	}
	if !intervalsEqual(Flatten([]Interval{iv(2, 3), iv(2, 5), iv(2, 4), iv(2, 3), iv(2, 6), iv(2, 7)}), []Interval{iv(2, 7)}) {
		t.Error("Flatten 6 failed")
	}
	intervals := Flatten(makeLargeIntervalsSlice())
	if intervals[0].Begin > intervals[0].End {
		t.Error("Flatten 7a failed")
	}
	for i := 1; i < len(intervals); i++ {
		interval := intervals[i]
		if interval.Begin > interval.End || interval.Begin <= intervals[i-1].End {
			t.Error("Flatten 7b failed")
		}
	}
}

func TestParallelFlatten(t *testing.T) {
	if ParallelFlatten(nil) != nil {
		t.Error("empty ParallelFlatten failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{iv(2, 3), iv(3, 4)}), []Interval{iv(2, 4)}) {
		t.Error("ParallelFlatten 1 failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{iv(2, 4), iv(3, 5), iv(4, 6), iv(7, 9)}), []Interval{iv(2, 6), iv(7, 9)}) {
		t.Error("ParallelFlatten 2 failed")
	}
	intervals := ParallelFlatten(makeLargeIntervalsSlice())
	if intervals[0].Begin > intervals[0].End {
		t.Error("ParallelFlatten 3a failed")
	}
	for i := 1; i < len(intervals); i++ {
		interval := intervals[i]
		if interval.Begin > interval.End || interval.Begin <= intervals[i-1].End {
			t.Error("ParallelFlatten 3b failed")
		}
	}
}

func TestParallelFlattenCoveringInterval(t *testing.T) {
	// A leading interval that covers every later one drains the whole
	// right half during the merge.
	intervals := make([]Interval, 0x2000)
	intervals[0] = iv(0, MaxEnd)
	for i := 1; i < len(intervals); i++ {
		intervals[i] = iv(int32(i*10), int32(i*10+5))
	}
	if !intervalsEqual(ParallelFlatten(intervals), []Interval{iv(0, MaxEnd)}) {
		t.Error("ParallelFlatten covering interval failed")
	}
}

func BenchmarkFlatten(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		intervals := makeLargeIntervalsSlice()
		b.StartTimer()
		intervals = Flatten(intervals)
	}
}

func BenchmarkParallelFlatten(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		intervals := makeLargeIntervalsSlice()
		b.StartTimer()
		intervals = ParallelFlatten(intervals)
	}
}

func TestParallelSortByBegin(t *testing.T) {
	intervals := makeLargeIntervalsSlice()
	rand.Shuffle(len(intervals), func(i, j int) {
		intervals[i], intervals[j] = intervals[j], intervals[i]
	})
	ParallelSortByBegin(intervals)
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Begin < intervals[i-1].Begin {
			t.Error("ParallelSortByBegin failed")
		}
	}
}

func TestAnyOverlap(t *testing.T) {
	if AnyOverlap(nil, iv(2, 3)) {
		t.Error("empty AnyOverlap failed")
	}
	intervals := []Interval{iv(2, 4), iv(6, 9), iv(12, 20)}
	if !AnyOverlap(intervals, iv(3, 7)) {
		t.Error("AnyOverlap 1 failed")
	}
	if AnyOverlap(intervals, iv(4, 6)) {
		t.Error("AnyOverlap 2 failed")
	}
	if !AnyOverlap(intervals, iv(19, 25)) {
		t.Error("AnyOverlap 3 failed")
	}
	if AnyOverlap(intervals, iv(20, 25)) {
		t.Error("AnyOverlap 4 failed")
	}
}

func TestIntersect(t *testing.T) {
	intervals := []Interval{iv(2, 4), iv(6, 9), iv(12, 20)}
	if !intervalsEqual(Intersect(intervals, iv(3, 13)), intervals) {
		t.Error("Intersect 1 failed")
	}
	if !intervalsEqual(Intersect(intervals, iv(4, 12)), intervals[1:2]) {
		t.Error("Intersect 2 failed")
	}
	if len(Intersect(intervals, iv(20, 25))) != 0 {
		t.Error("Intersect 3 failed")
	}
}

func TestParseBedLine(t *testing.T) {
	if ival, err := ParseBedLine("chr1\t100\t200"); err != nil || ival != iv(100, 200) {
		t.Error("ParseBedLine failed")
	}
	if ival, err := ParseBedLine("chr1\t100\t200\tname\t0\t-"); err != nil || ival != (Interval{"chr1", 100, 200, '-'}) {
		t.Error("ParseBedLine strand failed")
	}
	if _, err := ParseBedLine("chr1\t100"); err == nil {
		t.Error("ParseBedLine short line failed")
	}
	if _, err := ParseBedLine("chr1\t100\t200\tname\t0\t?"); err == nil {
		t.Error("ParseBedLine invalid strand failed")
	}
}
