package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	t.Cleanup(func() { readPassword = old })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  a@b.com \n"), "Email", &out)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got)
	require.Equal(t, "Email: ", out.String())
}

func TestGetSimpleText_EOFAfterInput(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret", nil)
	var out bytes.Buffer

	got, err := GetPassword("Password", &out)
	require.NoError(t, err)
	require.Equal(t, "secret", got)
	require.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubPassword(t, "", errors.New("boom"))
	var out bytes.Buffer

	_, err := GetPassword("Password", &out)
	require.Error(t, err)
}
