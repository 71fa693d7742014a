// Package record implements a generic line codec for fixed-shape
// tab-delimited records, and a verbatim header accumulator.
//
// A record type declares an ordered schema of named, typed fields.
// Given that schema and a slice of pointers to the fields in
// declaration order, Parse reads one delimiter-separated line into the
// fields positionally, and Format writes the fields back out in the
// same order. Record types get their line codec for free; they never
// hand-write per-field parsing code.
package record

import (
	"encoding"
	"fmt"
	"strconv"
)

// Delimiter separates the fields of a record line.
const Delimiter = '\t'

// A Kind selects the type-directed parser/formatter for a field.
type Kind int

// The field kinds understood by the codec.
const (
	// Text is a verbatim string field.
	Text Kind = iota
	// Int32 is a signed 32-bit integer field.
	Int32
	// Uint8 is an unsigned 8-bit integer field.
	Uint8
	// Uint16 is an unsigned 16-bit integer field, also used for
	// bitmask fields such as the SAM flag.
	Uint16
	// Float64 is a floating point field.
	Float64
	// Value is a field whose pointer implements both
	// encoding.TextUnmarshaler and encoding.TextMarshaler.
	Value
	// Tail is a variable-length list of trailing columns, stored
	// verbatim in a []string. A Tail field can only appear last.
	Tail
)

// A Field is one column in a record schema.
type Field struct {
	Name string
	Kind Kind
}

// A Schema is the ordered, fixed list of fields of a record type. If
// the last field has kind Tail, the record accepts a variable number of
// trailing columns; otherwise the field count of a line must match the
// schema exactly.
type Schema struct {
	Name   string
	Fields []Field
}

// HasTail returns whether the schema declares a variable-length tail.
func (s Schema) HasTail() bool {
	return len(s.Fields) > 0 && s.Fields[len(s.Fields)-1].Kind == Tail
}

// Interface is implemented by record types that use the generic line
// codec. Fields returns pointers to the record's fields in schema
// declaration order; a Tail field is represented by a *[]string.
type Interface interface {
	Schema() Schema
	Fields() []interface{}
}

// Parse reads one delimiter-separated line into the fields of rec,
// positionally, by type-directed parsing. A field count mismatch is an
// error unless the schema declares a Tail.
//
// Parse assigns fields as it goes; callers that must not observe a
// partially assigned record on error should parse into a temporary
// record and assign on success, which is what sam.Alignment.Parse and
// vcf.Variant.Parse do.
func Parse(line string, rec Interface) error {
	schema := rec.Schema()
	fields := rec.Fields()
	if len(fields) != len(schema.Fields) {
		panic(fmt.Sprintf("%v schema declares %v fields, Fields returns %v", schema.Name, len(schema.Fields), len(fields)))
	}
	var sc StringScanner
	sc.Reset(line)
	nfixed := len(schema.Fields)
	if schema.HasTail() {
		nfixed--
	}
	for i := 0; i < nfixed; i++ {
		if sc.Err() == nil && sc.Len() == 0 {
			return fmt.Errorf("truncated %v line: missing %v field", schema.Name, schema.Fields[i].Name)
		}
		field := schema.Fields[i]
		switch field.Kind {
		case Text:
			*fields[i].(*string) = sc.ParseText()
		case Int32:
			*fields[i].(*int32) = sc.ParseInt32()
		case Uint8:
			*fields[i].(*uint8) = sc.ParseUint8()
		case Uint16:
			*fields[i].(*uint16) = sc.ParseUint16()
		case Float64:
			*fields[i].(*float64) = sc.ParseFloat64()
		case Value:
			text := sc.ParseText()
			if sc.Err() == nil {
				sc.SetErr(fields[i].(encoding.TextUnmarshaler).UnmarshalText([]byte(text)))
			}
		default:
			panic(fmt.Sprintf("invalid kind for %v field %v", schema.Name, field.Name))
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("%v, while parsing the %v field of a %v line", err, field.Name, schema.Name)
		}
	}
	if schema.HasTail() {
		tail := fields[len(fields)-1].(*[]string)
		*tail = (*tail)[:0]
		for sc.Len() > 0 {
			*tail = append(*tail, sc.ParseText())
		}
	} else if sc.Len() > 0 {
		return fmt.Errorf("excess fields in a %v line", schema.Name)
	}
	return nil
}

// Format appends the fields of rec to buf in schema declaration order,
// joined by the field delimiter, and returns the extended buffer. For
// every line whose fields were already in canonical textual form,
// Format(Parse(line)) reproduces the line. A trailing delimiter is not
// canonical: the empty final column it denotes is dropped by Parse, so
// it does not survive a round trip.
func Format(buf []byte, rec Interface) ([]byte, error) {
	schema := rec.Schema()
	fields := rec.Fields()
	for i, field := range schema.Fields {
		if i > 0 && field.Kind != Tail {
			buf = append(buf, Delimiter)
		}
		switch field.Kind {
		case Text:
			buf = append(buf, *fields[i].(*string)...)
		case Int32:
			buf = strconv.AppendInt(buf, int64(*fields[i].(*int32)), 10)
		case Uint8:
			buf = strconv.AppendUint(buf, uint64(*fields[i].(*uint8)), 10)
		case Uint16:
			buf = strconv.AppendUint(buf, uint64(*fields[i].(*uint16)), 10)
		case Float64:
			buf = strconv.AppendFloat(buf, *fields[i].(*float64), 'g', -1, 64)
		case Value:
			text, err := fields[i].(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil, fmt.Errorf("%v, while formatting the %v field of a %v line", err, field.Name, schema.Name)
			}
			buf = append(buf, text...)
		case Tail:
			for _, column := range *fields[i].(*[]string) {
				buf = append(buf, Delimiter)
				buf = append(buf, column...)
			}
		}
	}
	return buf, nil
}
