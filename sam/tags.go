package sam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seqtools/seqtext/record"
	"github.com/seqtools/seqtext/utils"
)

// A ByteArray is the value of an optional field of type H.
type ByteArray []byte

func parseByteArray(value string) (ByteArray, error) {
	if len(value)%2 != 0 {
		return nil, fmt.Errorf("odd number of digits in hex byte array %v", value)
	}
	result := make(ByteArray, 0, len(value)>>1)
	for i := 0; i < len(value); i += 2 {
		val, err := strconv.ParseUint(value[i:i+2], 16, 8)
		if err != nil {
			return nil, err
		}
		result = append(result, byte(val))
	}
	return result, nil
}

func parseNumericArray(sc *record.StringScanner) (interface{}, error) {
	ntype, ok := sc.ReadByteUntil(',')
	if !ok {
		return nil, fmt.Errorf("missing entries in numeric array")
	}
	var entries []string
	for {
		entry, found := sc.ReadUntil(',')
		entries = append(entries, entry)
		if !found {
			break
		}
	}
	switch ntype {
	case 'c':
		result := make([]int8, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 8)
			if err != nil {
				return nil, err
			}
			result = append(result, int8(val))
		}
		return result, nil
	case 'C':
		result := make([]uint8, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 8)
			if err != nil {
				return nil, err
			}
			result = append(result, uint8(val))
		}
		return result, nil
	case 's':
		result := make([]int16, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 16)
			if err != nil {
				return nil, err
			}
			result = append(result, int16(val))
		}
		return result, nil
	case 'S':
		result := make([]uint16, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 16)
			if err != nil {
				return nil, err
			}
			result = append(result, uint16(val))
		}
		return result, nil
	case 'i':
		result := make([]int32, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 32)
			if err != nil {
				return nil, err
			}
			result = append(result, int32(val))
		}
		return result, nil
	case 'I':
		result := make([]uint32, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 32)
			if err != nil {
				return nil, err
			}
			result = append(result, uint32(val))
		}
		return result, nil
	case 'f':
		result := make([]float32, 0, len(entries))
		for _, entry := range entries {
			val, err := strconv.ParseFloat(entry, 32)
			if err != nil {
				return nil, err
			}
			result = append(result, float32(val))
		}
		return result, nil
	default:
		return nil, fmt.Errorf("invalid numeric array type %q", ntype)
	}
}

func parseOptionalField(field string) (tag utils.Symbol, value interface{}, err error) {
	colon := strings.IndexByte(field, ':')
	if colon != 2 {
		return nil, nil, fmt.Errorf("invalid field tag in SAM optional field %v", field)
	}
	rest := field[colon+1:]
	if len(rest) < 2 || rest[1] != ':' {
		return nil, nil, fmt.Errorf("invalid field type in SAM optional field %v", field)
	}
	tag = utils.Intern(field[:2])
	typebyte, text := rest[0], rest[2:]
	switch typebyte {
	case 'A':
		if len(text) != 1 {
			return nil, nil, fmt.Errorf("invalid character value %v in SAM optional field", text)
		}
		return tag, text[0], nil
	case 'i':
		val, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, nil, err
		}
		return tag, int32(val), nil
	case 'f':
		val, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, nil, err
		}
		return tag, float32(val), nil
	case 'Z':
		return tag, text, nil
	case 'H':
		val, err := parseByteArray(text)
		if err != nil {
			return nil, nil, err
		}
		return tag, val, nil
	case 'B':
		var sc record.StringScanner
		sc.Reset(text)
		val, err := parseNumericArray(&sc)
		if err != nil {
			return nil, nil, err
		}
		return tag, val, nil
	default:
		return nil, nil, fmt.Errorf("invalid field type %q in SAM optional field", typebyte)
	}
}

// Tags parses the verbatim optional fields of the alignment into a map
// keyed by interned tag Symbols. The value types follow the field type
// characters: byte for A, int32 for i, float32 for f, string for Z,
// ByteArray for H, and a typed numeric slice for B.
//
// The result is computed on every call; the alignment stores only the
// verbatim columns.
func (aln *Alignment) Tags() (utils.SmallMap, error) {
	tags := make(utils.SmallMap, 0, len(aln.TAGS))
	for _, field := range aln.TAGS {
		tag, value, err := parseOptionalField(field)
		if err != nil {
			return nil, fmt.Errorf("%v, while parsing SAM optional field %v", err, field)
		}
		tags.Set(tag, value)
	}
	return tags, nil
}
