package unstable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string) []Token {
	t.Helper()
	s := New([]byte(input), 0)
	var got []Token
	for {
		tok, err := s.NextAllocated()
		require.NoError(t, err)
		got = append(got, Token{Kind: tok.Kind, Data: append([]byte(nil), tok.Data...)})
		if tok.Kind == EndOfDocument {
			return got
		}
	}
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanner_SimpleAssignment(t *testing.T) {
	toks := scanAll(t, "x = 1\n")
	require.Equal(t, []Kind{KeyBegin, Key, ValueBegin, Int, EndOfDocument}, kinds(toks))
	require.Equal(t, []byte("1"), toks[3].Data)
}

func TestScanner_DottedKey(t *testing.T) {
	toks := scanAll(t, "a.b.c = \"hi\"\n")
	require.Equal(t, []Kind{
		KeyBegin, Key, KeyBegin, Key, KeyBegin, Key, ValueBegin, String, EndOfDocument,
	}, kinds(toks))
}

func TestScanner_TableHeader(t *testing.T) {
	toks := scanAll(t, "[a.b]\nx = 1\n")
	require.Equal(t, []Kind{
		TableKeyBegin, Key, TableKeyBegin, Key, TableBegin,
		KeyBegin, Key, ValueBegin, Int, EndOfDocument,
	}, kinds(toks))
}

func TestScanner_ArrayTableHeaderRequiresDoubleClose(t *testing.T) {
	s := New([]byte("[[a]\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_ArrayOfTables(t *testing.T) {
	toks := scanAll(t, "[[a]]\n")
	require.Equal(t, []Kind{ArrayTableKeyBegin, Key, TableBegin, EndOfDocument}, kinds(toks))
}

func TestScanner_InlineTable(t *testing.T) {
	toks := scanAll(t, `t = { a = 1, b = 2 }`+"\n")
	require.Equal(t, []Kind{
		KeyBegin, Key, ValueBegin, InlineTableBegin,
		KeyBegin, Key, ValueBegin, Int,
		KeyBegin, Key, ValueBegin, Int,
		InlineTableEnd, EndOfDocument,
	}, kinds(toks))
}

func TestScanner_Array(t *testing.T) {
	toks := scanAll(t, "a = [1, 2, 3]\n")
	require.Equal(t, []Kind{
		KeyBegin, Key, ValueBegin, ArrayBegin, Int, Int, Int, ArrayEnd, EndOfDocument,
	}, kinds(toks))
}

func TestScanner_EmptyArray(t *testing.T) {
	toks := scanAll(t, "a = []\n")
	require.Equal(t, []Kind{KeyBegin, Key, ValueBegin, ArrayBegin, ArrayEnd, EndOfDocument}, kinds(toks))
}

func TestScanner_BasicStringEscapes(t *testing.T) {
	toks := scanAll(t, `s = "a\u00e9b"` + "\n")
	require.Equal(t, []Kind{KeyBegin, Key, ValueBegin, AllocatedString, EndOfDocument}, kinds(toks))
	require.Equal(t, []byte("aéb"), toks[3].Data)
}

func TestScanner_BasicStringNoEscapesIsBorrowed(t *testing.T) {
	s := New([]byte(`s = "hello"`+"\n"), 0)
	require.NoError(t, advanceTo(s, KeyBegin))
	require.NoError(t, advanceTo(s, Key))
	require.NoError(t, advanceTo(s, ValueBegin))
	tok, err := s.NextAllocated()
	require.NoError(t, err)
	require.Equal(t, String, tok.Kind)
	require.Equal(t, "hello", string(tok.Data))
}

func advanceTo(s *Scanner, want Kind) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if tok.Kind == want {
			return nil
		}
	}
}

func TestScanner_LiteralString(t *testing.T) {
	toks := scanAll(t, `s = 'C:\Users\nodejs'` + "\n")
	require.Equal(t, String, toks[3].Kind)
	require.Equal(t, `C:\Users\nodejs`, string(toks[3].Data))
}

func TestScanner_MultilineBasicTrimsLeadingNewline(t *testing.T) {
	toks := scanAll(t, "s = \"\"\"\nhello\"\"\"\n")
	require.Equal(t, "hello", string(toks[3].Data))
}

func TestScanner_MultilineBasicLineContinuation(t *testing.T) {
	toks := scanAll(t, "s = \"\"\"a\\\n   b\"\"\"\n")
	require.Equal(t, "ab", string(toks[3].Data))
}

func TestScanner_MultilineBasicFiveQuotes(t *testing.T) {
	toks := scanAll(t, `s = """a"""""`+"\n")
	require.Equal(t, `a""`, string(toks[3].Data))
}

func TestScanner_MultilineLiteralBareCRLF(t *testing.T) {
	toks := scanAll(t, "s = '''a\r\nb'''\n")
	require.Equal(t, "a\r\nb", string(toks[3].Data))
}

func TestScanner_MultilineLiteralBareCRWithoutLF(t *testing.T) {
	s := New([]byte("s = '''a\rb'''\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_Numbers(t *testing.T) {
	examples := []struct {
		input string
		kind  Kind
	}{
		{"1234", Int},
		{"0", Int},
		{"+99", Int},
		{"-17", Int},
		{"0xDEADBEEF", Int},
		{"0xdead_beef", Int},
		{"0o01234567", Int},
		{"0b11010110", Int},
		{"0.0", Float},
		{"+0.0", Float},
		{"-0.0", Float},
		{"3.1415", Float},
		{"5e+22", Float},
		{"1e06", Float},
		{"-2E-2", Float},
		{"6.626e-34", Float},
		{"224_617.445_991_228", Float},
		{"inf", Float},
		{"-inf", Float},
		{"+inf", Float},
		{"nan", Float},
		{"-nan", Float},
	}
	for _, e := range examples {
		e := e
		t.Run(e.input, func(t *testing.T) {
			toks := scanAll(t, "x = "+e.input+"\n")
			require.Equal(t, e.kind, toks[3].Kind)
			require.Equal(t, e.input, string(toks[3].Data))
		})
	}
}

func TestScanner_LeadingZeroIsError(t *testing.T) {
	s := New([]byte("x = 0123\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_SignedBasedIntegerIsError(t *testing.T) {
	for _, input := range []string{"x = +0x1\n", "x = -0x1\n"} {
		s := New([]byte(input), 0)
		var lastErr error
		for {
			_, err := s.Next()
			if err != nil {
				lastErr = err
				break
			}
		}
		require.Error(t, lastErr, input)
	}
}

func TestScanner_Datetimes(t *testing.T) {
	examples := []string{
		"2021-07-21T12:08:05Z",
		"2021-07-21 12:08:05+08:00",
		"2021-07-21T12:08:05.666666666",
		"2021-07-21T12:08:05",
		"2021-07-21",
		"12:08:05",
	}
	for _, input := range examples {
		input := input
		t.Run(input, func(t *testing.T) {
			toks := scanAll(t, "x = "+input+"\n")
			require.Equal(t, Datetime, toks[3].Kind)
			require.Equal(t, input, string(toks[3].Data))
		})
	}
}

func TestScanner_DuplicateCommaInArrayIsError(t *testing.T) {
	s := New([]byte("a = [1,,2]\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_NewlineInsideInlineTableIsError(t *testing.T) {
	s := New([]byte("a = {x = 1\n}\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_TrailingCommaInInlineTableIsError(t *testing.T) {
	s := New([]byte("a = {x = 1,}\n"), 0)
	var lastErr error
	for {
		_, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
}

func TestScanner_Comment(t *testing.T) {
	toks := scanAll(t, "# hello\nx = 1 # trailing\n")
	require.Equal(t, []Kind{KeyBegin, Key, ValueBegin, Int, EndOfDocument}, kinds(toks))
}

func TestScanner_MaxValueLen(t *testing.T) {
	s := New([]byte(`x = "hello world"`+"\n"), 5)
	require.NoError(t, advanceTo(s, ValueBegin))
	_, err := s.NextAllocated()
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ValueTooLong, perr.Kind)
}

// TestScanner_MaxValueLenAcrossEscapes exercises a string built from many
// small escape-separated fragments, none of which alone exceeds maxValueLen,
// but whose total length does. The bound must be enforced against the whole
// lexeme, not reset at each escape.
func TestScanner_MaxValueLenAcrossEscapes(t *testing.T) {
	input := `x = "` + strings.Repeat(`\n`, 20) + `"` + "\n"
	s := New([]byte(input), 5)
	require.NoError(t, advanceTo(s, ValueBegin))
	var lastErr error
	for {
		_, err := s.NextAllocated()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
	perr, ok := lastErr.(*Error)
	require.True(t, ok)
	require.Equal(t, ValueTooLong, perr.Kind)
}

// TestScanner_MultilineMaxValueLenAcrossEscapes is the multi-line string
// analogue of TestScanner_MaxValueLenAcrossEscapes.
func TestScanner_MultilineMaxValueLenAcrossEscapes(t *testing.T) {
	input := `x = """` + strings.Repeat(`\n`, 20) + `"""` + "\n"
	s := New([]byte(input), 5)
	require.NoError(t, advanceTo(s, ValueBegin))
	var lastErr error
	for {
		_, err := s.NextAllocated()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
	perr, ok := lastErr.(*Error)
	require.True(t, ok)
	require.Equal(t, ValueTooLong, perr.Kind)
}
