package sam

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/willf/bitset"
)

// CigarOperations lists the characters that are valid CIGAR operations.
// Lowercase operations are accepted on input and normalized to
// uppercase.
const CigarOperations = "MmIiDdNnSsHhPpXx="

var cigarOperationsTable = make(map[byte]byte, len(CigarOperations))

func init() {
	for _, c := range CigarOperations {
		cigarOperationsTable[byte(c)] = byte(unicode.ToUpper(rune(c)))
	}
}

func opSet(ops string) *bitset.BitSet {
	s := bitset.New(256)
	for i := 0; i < len(ops); i++ {
		s.Set(uint(ops[i]))
	}
	return s
}

// Operation classes of the SAM specification: operations that consume
// reference bases, operations that consume read bases, and clipping
// operations.
var (
	refConsuming  = opSet("MDN=X")
	readConsuming = opSet("MIS=X")
	clipping      = opSet("SH")
)

// A CigarOperation is a run of Length consecutive positions to which
// the same alignment Operation applies.
type CigarOperation struct {
	Length    int32
	Operation byte
}

// String returns the text form of a single CIGAR operation.
func (op CigarOperation) String() string {
	return string(strconv.AppendInt(nil, int64(op.Length), 10)) + string(op.Operation)
}

// A Cigar is an ordered sequence of CIGAR operations, in alignment
// order of the read. A Cigar is not kept in canonical run form
// automatically: adjacent operations with the same operation character
// are only merged by an explicit call to Compact.
type Cigar []CigarOperation

func isDigit(char byte) bool { return ('0' <= char) && (char <= '9') }

func scanCigarOperation(cigar string, i int) (op CigarOperation, j int, err error) {
	for j = i; j < len(cigar); j++ {
		if char := cigar[j]; !isDigit(char) {
			length, nerr := strconv.ParseInt(cigar[i:j], 10, 32)
			if nerr != nil {
				return op, j, nerr
			}
			operation := cigarOperationsTable[char]
			if operation == 0 {
				return op, j, fmt.Errorf("invalid CIGAR operation %q", char)
			}
			return CigarOperation{int32(length), operation}, j + 1, nil
		}
	}
	return op, j, fmt.Errorf("truncated CIGAR operation %v", cigar[i:])
}

// ScanCigar parses the text form of a CIGAR string, a sequence of
// (digits, operation character) pairs. The SAM placeholder "*" parses
// to the empty Cigar.
func ScanCigar(cigar string) (Cigar, error) {
	if cigar == "*" {
		return nil, nil
	}
	ops := make(Cigar, 0, 4)
	for i := 0; i < len(cigar); {
		cigarOperation, j, err := scanCigarOperation(cigar, i)
		if err != nil {
			return nil, fmt.Errorf("%v, while scanning CIGAR string %v", err, cigar)
		}
		ops = append(ops, cigarOperation)
		i = j
	}
	return ops, nil
}

// RefLength returns the number of reference bases consumed by the
// alignment: the summed lengths of the M, D, N, = and X operations.
func (c Cigar) RefLength() int32 {
	var length int32
	for _, op := range c {
		if refConsuming.Test(uint(op.Operation)) {
			length += op.Length
		}
	}
	return length
}

// ReadLength returns the number of read bases consumed by the
// alignment: the summed lengths of the M, I, S, = and X operations.
func (c Cigar) ReadLength() int32 {
	var length int32
	for _, op := range c {
		if readConsuming.Test(uint(op.Operation)) {
			length += op.Length
		}
	}
	return length
}

// ClipLength returns the summed lengths of the S and H operations.
func (c Cigar) ClipLength() int32 {
	var length int32
	for _, op := range c {
		if clipping.Test(uint(op.Operation)) {
			length += op.Length
		}
	}
	return length
}

// Compact merges every run of consecutive operations with an identical
// operation character into a single operation. Compact is idempotent,
// and a no-op on Cigars with fewer than two operations.
func (c *Cigar) Compact() {
	ops := *c
	if len(ops) <= 1 {
		return
	}
	w := 0
	for _, op := range ops[1:] {
		if op.Operation == ops[w].Operation {
			ops[w].Length += op.Length
		} else {
			w++
			ops[w] = op
		}
	}
	*c = ops[:w+1]
}

// Contains returns whether the given operation character occurs in the
// Cigar.
func (c Cigar) Contains(key byte) bool {
	for _, op := range c {
		if op.Operation == key {
			return true
		}
	}
	return false
}

// ContainsAny returns whether any of the given operation characters
// occurs in the Cigar.
func (c Cigar) ContainsAny(keys string) bool {
	set := opSet(keys)
	for _, op := range c {
		if set.Test(uint(op.Operation)) {
			return true
		}
	}
	return false
}

// Reverse reverses the operation order in place, flipping the Cigar to
// the opposite strand perspective.
func (c Cigar) Reverse() {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// Push appends a single operation.
func (c *Cigar) Push(length int32, operation byte) {
	*c = append(*c, CigarOperation{length, operation})
}

// Append appends all operations of the other Cigar.
func (c *Cigar) Append(other Cigar) {
	*c = append(*c, other...)
}

// Swap exchanges the operations of the two Cigars.
func (c *Cigar) Swap(other *Cigar) {
	*c, *other = *other, *c
}

// Front returns the first operation. The Cigar must not be empty.
func (c Cigar) Front() CigarOperation {
	return c[0]
}

// Back returns the last operation. The Cigar must not be empty.
func (c Cigar) Back() CigarOperation {
	return c[len(c)-1]
}

// PopFront removes the first operation. The Cigar must not be empty.
func (c *Cigar) PopFront() {
	*c = append((*c)[:0], (*c)[1:]...)
}

// PopBack removes the last operation. The Cigar must not be empty.
func (c *Cigar) PopBack() {
	*c = (*c)[:len(*c)-1]
}

// Clear removes all operations.
func (c *Cigar) Clear() {
	*c = (*c)[:0]
}

// Equal returns whether the two Cigars consist of the same operations
// in the same order.
func (c Cigar) Equal(other Cigar) bool {
	if len(c) != len(other) {
		return false
	}
	for i, op := range c {
		if op != other[i] {
			return false
		}
	}
	return true
}

// String returns the text form of the Cigar, or "*" for the empty
// Cigar. A Cigar parsed from canonical run form reproduces its input;
// call Compact first to canonicalize a Cigar built from redundant runs.
func (c Cigar) String() string {
	if len(c) == 0 {
		return "*"
	}
	buf := make([]byte, 0, 4*len(c))
	for _, op := range c {
		buf = strconv.AppendInt(buf, int64(op.Length), 10)
		buf = append(buf, op.Operation)
	}
	return string(buf)
}

// MarshalText implements encoding.TextMarshaler, so that a Cigar field
// can take part in the generic record line codec.
func (c Cigar) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cigar) UnmarshalText(text []byte) error {
	ops, err := ScanCigar(string(text))
	if err != nil {
		return err
	}
	*c = ops
	return nil
}
