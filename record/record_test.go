package record

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// version is a Value field used to exercise the TextMarshaler path of
// the codec.
type version struct {
	major, minor int32
}

func (v version) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%v.%v", v.major, v.minor)), nil
}

func (v *version) UnmarshalText(text []byte) error {
	dot := strings.IndexByte(string(text), '.')
	if dot < 0 {
		return fmt.Errorf("missing '.' in version %v", string(text))
	}
	major, err := strconv.ParseInt(string(text[:dot]), 10, 32)
	if err != nil {
		return err
	}
	minor, err := strconv.ParseInt(string(text[dot+1:]), 10, 32)
	if err != nil {
		return err
	}
	*v = version{int32(major), int32(minor)}
	return nil
}

type testRecord struct {
	Name    string
	Count   int32
	Level   uint8
	Mask    uint16
	Score   float64
	Version version
	Extra   []string
}

var testSchema = Schema{
	Name: "test",
	Fields: []Field{
		{Name: "NAME", Kind: Text},
		{Name: "COUNT", Kind: Int32},
		{Name: "LEVEL", Kind: Uint8},
		{Name: "MASK", Kind: Uint16},
		{Name: "SCORE", Kind: Float64},
		{Name: "VERSION", Kind: Value},
		{Name: "EXTRA", Kind: Tail},
	},
}

func (r *testRecord) Schema() Schema { return testSchema }

func (r *testRecord) Fields() []interface{} {
	return []interface{}{&r.Name, &r.Count, &r.Level, &r.Mask, &r.Score, &r.Version, &r.Extra}
}

type fixedRecord struct {
	Name  string
	Count int32
}

var fixedSchema = Schema{
	Name: "fixed",
	Fields: []Field{
		{Name: "NAME", Kind: Text},
		{Name: "COUNT", Kind: Int32},
	},
}

func (r *fixedRecord) Schema() Schema { return fixedSchema }

func (r *fixedRecord) Fields() []interface{} {
	return []interface{}{&r.Name, &r.Count}
}

func TestParse(t *testing.T) {
	var rec testRecord
	require.NoError(t, Parse("abc\t-17\t3\t99\t0.25\t1.2\tx\ty", &rec))
	assert.Equal(t, "abc", rec.Name)
	assert.Equal(t, int32(-17), rec.Count)
	assert.Equal(t, uint8(3), rec.Level)
	assert.Equal(t, uint16(99), rec.Mask)
	assert.Equal(t, 0.25, rec.Score)
	assert.Equal(t, version{1, 2}, rec.Version)
	assert.Equal(t, []string{"x", "y"}, rec.Extra)
}

func TestParseEmptyTail(t *testing.T) {
	rec := testRecord{Extra: []string{"stale"}}
	require.NoError(t, Parse("abc\t-17\t3\t99\t0.25\t1.2", &rec))
	assert.Empty(t, rec.Extra)
}

func TestParseErrors(t *testing.T) {
	var rec testRecord
	err := Parse("abc\t-17\t3", &rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing MASK field")

	err = Parse("abc\tnotanumber\t3\t99\t0.25\t1.2", &rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while parsing the COUNT field of a test line")

	err = Parse("abc\t-17\t3\t99\t0.25\tnodot", &rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while parsing the VERSION field of a test line")

	var fixed fixedRecord
	err = Parse("abc\t17\textra", &fixed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excess fields in a fixed line")
}

func TestFormat(t *testing.T) {
	rec := testRecord{
		Name:    "abc",
		Count:   -17,
		Level:   3,
		Mask:    99,
		Score:   0.25,
		Version: version{1, 2},
		Extra:   []string{"x", "y"},
	}
	buf, err := Format(nil, &rec)
	require.NoError(t, err)
	assert.Equal(t, "abc\t-17\t3\t99\t0.25\t1.2\tx\ty", string(buf))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, line := range []string{
		"abc\t-17\t3\t99\t0.25\t1.2\tx\ty",
		"\t0\t0\t0\t0\t0.0",
		"abc\t2147483647\t255\t65535\t1e-06\t10.20",
	} {
		var rec testRecord
		require.NoError(t, Parse(line, &rec))
		buf, err := Format(nil, &rec)
		require.NoError(t, err)
		assert.Equal(t, line, string(buf))
	}
}

func TestParseTrailingDelimiter(t *testing.T) {
	// A trailing delimiter denotes an empty final column, which is
	// dropped; the round-trip contract only covers lines without one.
	var rec testRecord
	require.NoError(t, Parse("abc\t-17\t3\t99\t0.25\t1.2\tx\t", &rec))
	assert.Equal(t, []string{"x"}, rec.Extra)
	buf, err := Format(nil, &rec)
	require.NoError(t, err)
	assert.Equal(t, "abc\t-17\t3\t99\t0.25\t1.2\tx", string(buf))
}

func TestHeaderMatches(t *testing.T) {
	hdr := NewHeader("ggg", "%")
	assert.True(t, hdr.Matches("ggg header"))
	assert.True(t, hdr.Matches("%also a header"))
	assert.False(t, hdr.Matches("gg not a header"))
	assert.True(t, NewHeader().Matches("anything"))
}

func TestHeaderParse(t *testing.T) {
	hdr := NewHeader("ggg", "%")
	reader := bufio.NewReader(strings.NewReader("ggg one\n%two\nrecord line\nmore\n"))
	lines, err := hdr.Parse(reader)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)
	assert.Equal(t, []string{"ggg one", "%two"}, hdr.Lines)
	rest, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "record line\n", rest)
}

func TestHeaderParseLongLine(t *testing.T) {
	// Header lines can be longer than the reader's internal buffer.
	long := "@CO\t" + strings.Repeat("a", 8192)
	hdr := NewHeader("@")
	reader := bufio.NewReader(strings.NewReader(long + "\nrecord line\n"))
	lines, err := hdr.Parse(reader)
	require.NoError(t, err)
	assert.Equal(t, 1, lines)
	assert.Equal(t, []string{long}, hdr.Lines)
	rest, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "record line\n", rest)
}

func TestHeaderParseEOF(t *testing.T) {
	hdr := NewHeader("@")
	reader := bufio.NewReader(strings.NewReader("@one\n@two"))
	lines, err := hdr.Parse(reader)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)
	assert.Equal(t, []string{"@one", "@two"}, hdr.Lines)

	empty := NewHeader("@")
	lines, err = empty.Parse(bufio.NewReader(strings.NewReader("")))
	require.NoError(t, err)
	assert.Equal(t, 0, lines)
	assert.Empty(t, empty.Lines)
}

func TestHeaderRoundTrip(t *testing.T) {
	block := "@HD\tVN:1.6\n@SQ\tSN:chr1\n"
	hdr := NewHeader("@")
	_, err := hdr.Parse(bufio.NewReader(strings.NewReader(block + "aln line\n")))
	require.NoError(t, err)
	assert.Equal(t, block, hdr.String())

	var sb strings.Builder
	out := bufio.NewWriter(&sb)
	require.NoError(t, hdr.Format(out))
	require.NoError(t, out.Flush())
	assert.Equal(t, block, sb.String())
}
