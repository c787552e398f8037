package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) string {
	t.Helper()

	dir := t.TempDir()
	in := filepath.Join(dir, "source.cl")
	out := filepath.Join(dir, "source.out")
	require.NoError(t, os.WriteFile(in, []byte(src), 0o644))

	require.NoError(t, run(in, out, "", false))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(got)
}

func TestRun_ClassHeader(t *testing.T) {
	got := scan(t, "class Foo inherits IO { };\n")
	want := `#name "source.cl"
#1 CLASS
#1 TYPEID Foo
#1 INHERITS
#1 TYPEID IO
#1 '{'
#1 '}'
#1 ';'
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_ArithAndOperators(t *testing.T) {
	got := scan(t, "x <- 3 <= 4 => 5\n")
	want := `#name "source.cl"
#1 OBJECTID x
#1 ASSIGN
#1 INT_CONST 3
#1 LE
#1 INT_CONST 4
#1 DARROW
#1 INT_CONST 5
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_Keywords(t *testing.T) {
	got := scan(t, "if then else fi while loop pool case esac of new isvoid not\n")
	want := `#name "source.cl"
#1 IF
#1 THEN
#1 ELSE
#1 FI
#1 WHILE
#1 LOOP
#1 POOL
#1 CASE
#1 ESAC
#1 OF
#1 NEW
#1 ISVOID
#1 NOT
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_AllElseTrue(t *testing.T) {
	got := scan(t, "true false tRue fAlse True False TRUE\n")
	want := `#name "source.cl"
#1 BOOL_CONST true
#1 BOOL_CONST false
#1 BOOL_CONST true
#1 BOOL_CONST false
#1 TYPEID True
#1 TYPEID False
#1 TYPEID TRUE
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_StringEscapes(t *testing.T) {
	got := scan(t, "\"a\\tb\\nc\"\n")
	want := `#name "source.cl"
#1 STR_CONST "a\tb\nc"
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_EOFInStringConstant(t *testing.T) {
	got := scan(t, "\"unterminated")
	want := `#name "source.cl"
#1 ERROR "EOF in string constant"
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_BadIdentifiersResync(t *testing.T) {
	got := scan(t, "foo $ bar\n")
	want := `#name "source.cl"
#1 OBJECTID foo
#1 ERROR "$"
#1 OBJECTID bar
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_EmptyFileHasNoTrailingBlankLine(t *testing.T) {
	got := scan(t, "")
	want := "#name \"source.cl\"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRun_ConfiguredStringLimit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "source.cl")
	out := filepath.Join(dir, "source.out")
	cfg := filepath.Join(dir, "limits.yaml")

	require.NoError(t, os.WriteFile(in, []byte(`"abcd"`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg, []byte("max_string_constant: 2\n"), 0o644))

	require.NoError(t, run(in, out, cfg, false))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want := `#name "source.cl"
#1 ERROR "String constant too long"
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}
