package writer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/zxdetok/internal/program"
	"github.com/retroenv/zxdetok/internal/vars"
)

func testProgram() *program.Program {
	prg := &program.Program{}
	prg.AddLine(12, " PRINT 012")
	prg.AddLine(20, " GO TO 12")
	prg.Variables.Records = []vars.Record{
		vars.Number{Letter: "A", Value: "5"},
		vars.Loop{Letter: "I", Value: "1", Limit: "10", Line: 20},
	}
	return prg
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{Variables: true})
	assert.NoError(t, w.Write(testProgram()))

	expected := "12 PRINT 012\n" +
		"20 GO TO 12\n" +
		"\n" +
		"A = 5\n" +
		"FOR I = 1 TO 10\n" +
		"  NEXT resumes at line 20\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteWithoutVariables(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})
	assert.NoError(t, w.Write(testProgram()))
	assert.Equal(t, "12 PRINT 012\n20 GO TO 12\n", buf.String())
}

func TestWriteEmptyProgram(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{Variables: true})
	assert.NoError(t, w.Write(&program.Program{}))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {
	w := New(failingWriter{}, Options{Variables: true})
	err := w.Write(testProgram())
	assert.ErrorContains(t, err, "writing line 12")
}
