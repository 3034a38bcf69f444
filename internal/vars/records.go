package vars

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/retroenv/zxdetok/internal/number"
)

// Kind is the variant of a variable record.
type Kind int

// Record variants.
const (
	KindNumber Kind = iota
	KindString
	KindLongName
	KindNumericArray
	KindStringArray
	KindLoop
)

var kindNames = map[Kind]string{
	KindNumber:       "number",
	KindString:       "string",
	KindLongName:     "long name",
	KindNumericArray: "numeric array",
	KindStringArray:  "string array",
	KindLoop:         "loop",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Record is a decoded variable.
type Record interface {
	Kind() Kind
	Name() string
	// Lines returns the display text of the variable.
	Lines() []string
}

// Number is a numeric variable with a single letter name.
type Number struct {
	Letter string
	Value  string
}

func (n Number) Kind() Kind      { return KindNumber }
func (n Number) Name() string    { return n.Letter }
func (n Number) Lines() []string { return []string{n.Letter + " = " + n.Value} }

// String is a string variable.
type String struct {
	Letter string
	Value  string
}

func (s String) Kind() Kind      { return KindString }
func (s String) Name() string    { return s.Letter + "$" }
func (s String) Lines() []string { return []string{s.Name() + ` = "` + s.Value + `"`} }

// LongName is a variable with a multi character name. Names ending in $
// hold a string value.
type LongName struct {
	FullName string
	Value    string
}

func (l LongName) Kind() Kind   { return KindLongName }
func (l LongName) Name() string { return l.FullName }

// IsString returns whether the variable holds a string.
func (l LongName) IsString() bool {
	return strings.HasSuffix(l.FullName, "$")
}

func (l LongName) Lines() []string {
	if l.IsString() {
		return []string{l.FullName + ` = "` + l.Value + `"`}
	}
	return []string{l.FullName + " = " + l.Value}
}

// Array is a numeric or string array.
type Array struct {
	Letter     string
	Strings    bool
	Dimensions []int
	Elements   []string // numeric values or single characters
}

func (a Array) Kind() Kind {
	if a.Strings {
		return KindStringArray
	}
	return KindNumericArray
}

func (a Array) Name() string {
	if a.Strings {
		return a.Letter + "$"
	}
	return a.Letter
}

func (a Array) Lines() []string {
	dims := make([]string, len(a.Dimensions))
	for i, d := range a.Dimensions {
		dims[i] = fmt.Sprint(d)
	}
	lines := []string{fmt.Sprintf("DIM %s(%s)", a.Name(), strings.Join(dims, ","))}

	if a.Strings {
		return append(lines, a.stringRows()...)
	}

	indexed := elementCount(a.Dimensions) == len(a.Elements)
	for i, value := range a.Elements {
		if indexed {
			lines = append(lines, fmt.Sprintf("  %s(%s) = %s", a.Name(), indexLabel(a.Dimensions, i), value))
		} else {
			lines = append(lines, fmt.Sprintf("  %s[%d] = %s", a.Name(), i, value))
		}
	}
	return lines
}

// stringRows renders a string array as rows of its last dimension.
func (a Array) stringRows() []string {
	width := len(a.Elements)
	if len(a.Dimensions) > 1 {
		width = a.Dimensions[len(a.Dimensions)-1]
	}
	if width == 0 || elementCount(a.Dimensions) != len(a.Elements) {
		return []string{fmt.Sprintf(`  %s = "%s"`, a.Name(), strings.Join(a.Elements, ""))}
	}

	rows := a.Dimensions[:len(a.Dimensions)-1]
	var lines []string
	for i := 0; i < len(a.Elements); i += width {
		row := strings.Join(a.Elements[i:i+width], "")
		if len(rows) == 0 {
			lines = append(lines, fmt.Sprintf(`  %s = "%s"`, a.Name(), row))
			continue
		}
		lines = append(lines, fmt.Sprintf(`  %s(%s) = "%s"`, a.Name(), indexLabel(rows, i/width), row))
	}
	return lines
}

// Loop is the control variable of a FOR loop.
type Loop struct {
	Letter string
	Value  string
	Limit  string
	Step   string // empty if the machine does not store it
	Line   uint16 // line to resume at on NEXT
}

func (l Loop) Kind() Kind   { return KindLoop }
func (l Loop) Name() string { return l.Letter }

func (l Loop) Lines() []string {
	header := fmt.Sprintf("FOR %s = %s TO %s", l.Letter, l.Value, l.Limit)
	if l.Step != "" {
		header += " STEP " + l.Step
	}
	return []string{header, fmt.Sprintf("  NEXT resumes at line %d", l.Line)}
}

func parseNumber(d *Decoder, data []byte, offset int) (Record, int, error) {
	value, err := d.value(data, offset+1)
	if err != nil {
		return nil, 0, err
	}
	return Number{Letter: d.letter(data[offset]), Value: value}, 1 + d.profile.ValueSize, nil
}

func parseString(d *Decoder, data []byte, offset int) (Record, int, error) {
	value, size, err := d.stringValue(data, offset+1)
	if err != nil {
		return nil, 0, err
	}
	return String{Letter: d.letter(data[offset]), Value: value}, 1 + size, nil
}

func parseLongName(d *Decoder, data []byte, offset int) (Record, int, error) {
	var name strings.Builder
	name.WriteString(d.letter(data[offset]))

	pos := offset + 1
	isString := false
	for done := false; !done; pos++ {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: name of %s", ErrTruncated, name.String())
		}

		b := data[pos]
		switch {
		case b&0x80 != 0:
			name.WriteString(d.charset.Decode(b &^ 0x80))
			done = true
		case d.isDollar(b):
			name.WriteString("$")
			isString = true
			done = true
		default:
			name.WriteString(d.charset.Decode(b))
		}
	}

	var value string
	var size int
	var err error
	if isString {
		value, size, err = d.stringValue(data, pos)
	} else {
		size = d.profile.ValueSize
		value, err = d.value(data, pos)
	}
	if err != nil {
		return nil, 0, err
	}

	record := LongName{FullName: name.String(), Value: value}
	return record, pos + size - offset, nil
}

func parseNumericArray(d *Decoder, data []byte, offset int) (Record, int, error) {
	return d.parseArray(data, offset, false)
}

func parseStringArray(d *Decoder, data []byte, offset int) (Record, int, error) {
	return d.parseArray(data, offset, true)
}

// parseArray decodes the layout: tag, declared size (2), dimension
// count (1), extents (2 each), element payload.
func (d *Decoder) parseArray(data []byte, offset int, isString bool) (Record, int, error) {
	pos := offset + 1
	if err := need(data, pos, 3); err != nil {
		return nil, 0, err
	}
	declared := int(binary.LittleEndian.Uint16(data[pos:]))
	count := int(data[pos+2])
	pos += 3

	if err := need(data, pos, 2*count); err != nil {
		return nil, 0, err
	}
	dims := make([]int, count)
	for i := range dims {
		dims[i] = int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
	}

	elementSize := d.profile.ValueSize
	if isString {
		elementSize = 1
	}

	payload := declared - (2 + 1 + 2*count)
	switch {
	case payload < 0:
		return nil, 0, fmt.Errorf("%w: declared size %d is smaller than the %d dimensions", ErrArrayLength, declared, count)
	case pos+payload > len(data):
		return nil, 0, fmt.Errorf("%w: payload of %d bytes exceeds the data", ErrArrayLength, payload)
	case payload%elementSize != 0:
		return nil, 0, fmt.Errorf("%w: payload of %d bytes is not a multiple of %d", ErrArrayLength, payload, elementSize)
	}

	array := Array{
		Letter:     d.letter(data[offset]),
		Strings:    isString,
		Dimensions: dims,
	}
	for end := pos + payload; pos < end; pos += elementSize {
		if isString {
			array.Elements = append(array.Elements, d.charset.Decode(data[pos]))
			continue
		}
		value, err := d.value(data, pos)
		if err != nil {
			return nil, 0, err
		}
		array.Elements = append(array.Elements, value)
	}

	return array, pos - offset, nil
}

func parseLoop(d *Decoder, data []byte, offset int) (Record, int, error) {
	loop := Loop{Letter: d.letter(data[offset])}

	fields := []*string{&loop.Value, &loop.Limit}
	if d.profile.LoopStep {
		fields = append(fields, &loop.Step)
	}

	pos := offset + 1
	for _, field := range fields {
		value, err := d.value(data, pos)
		if err != nil {
			return nil, 0, err
		}
		*field = value
		pos += d.profile.ValueSize
	}

	if err := need(data, pos, 2); err != nil {
		return nil, 0, err
	}
	loop.Line = binary.LittleEndian.Uint16(data[pos:])
	pos += 2

	return loop, pos - offset, nil
}

// value decodes a numeric value: a signed 16 bit integer on the ZX80 and
// a 5 byte floating point number on the ZX81.
func (d *Decoder) value(data []byte, offset int) (string, error) {
	size := d.profile.ValueSize
	if err := need(data, offset, size); err != nil {
		return "", err
	}

	if size == 2 {
		v := int16(binary.LittleEndian.Uint16(data[offset:]))
		return number.Format(float64(v)), nil
	}
	return number.Format(number.DecodeFloat(data[offset : offset+size])), nil
}

// stringValue decodes a string with a 2 byte length prefix and returns
// the number of consumed bytes including the prefix.
func (d *Decoder) stringValue(data []byte, offset int) (string, int, error) {
	if err := need(data, offset, 2); err != nil {
		return "", 0, err
	}
	length := int(binary.LittleEndian.Uint16(data[offset:]))
	if err := need(data, offset+2, length); err != nil {
		return "", 0, err
	}
	return d.text(data[offset+2 : offset+2+length]), 2 + length, nil
}

func (d *Decoder) isDollar(code byte) bool {
	s, ok := d.charset.Base(code)
	return ok && s == "$"
}

func need(data []byte, offset, size int) error {
	if offset+size > len(data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, size, offset, max(len(data)-offset, 0))
	}
	return nil
}

func elementCount(dims []int) int {
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// indexLabel returns the 1 based subscripts of the flat element index i.
func indexLabel(dims []int, i int) string {
	subscripts := make([]string, len(dims))
	for j := len(dims) - 1; j >= 0; j-- {
		subscripts[j] = fmt.Sprint(i%dims[j] + 1)
		i /= dims[j]
	}
	return strings.Join(subscripts, ",")
}
