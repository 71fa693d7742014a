package interval

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseBedLine parses one BED data line into an interval. Only the
// first three columns (chrom, start, end) are required; the optional
// strand column, when present, sets the interval's strand.
func ParseBedLine(line string) (Interval, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Interval{}, fmt.Errorf("too few columns in BED line %v", line)
	}
	begin, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return Interval{}, fmt.Errorf("%v, while parsing BED line %v", err, line)
	}
	end, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return Interval{}, fmt.Errorf("%v, while parsing BED line %v", err, line)
	}
	strand := byte('+')
	if len(fields) > 5 {
		switch fields[5] {
		case "+":
		case "-":
			strand = '-'
		default:
			return Interval{}, fmt.Errorf("invalid strand column %v in BED line %v", fields[5], line)
		}
	}
	return New(fields[0], int32(begin), int32(end), strand)
}

// ReadBed reads the intervals of a BED file, skipping comment, track,
// and browser lines. The intervals are returned in file order.
func ReadBed(name string) ([]Interval, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	var intervals []Interval
	scanner := bufio.NewScanner(bufio.NewReader(file))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		ival, err := ParseBedLine(line)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, ival)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return intervals, nil
}
