package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	got, err = GetMultiline(rdr("a\r\nb"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	raw := []byte("s3cret")
	readPassword = func(int) ([]byte, error) { return raw, nil }
	var out bytes.Buffer
	pw, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, make([]byte, 6), raw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Enter password", &out)
	require.Error(t, err)
}

func TestParseDateInput(t *testing.T) {
	d, err := parseDateInput(" 2025-04-30 ")
	require.NoError(t, err)
	assert.Equal(t, timex.NewDate(2025, time.April, 30), d)

	_, err = parseDateInput("30.04.2025")
	require.Error(t, err)
}

func TestParseDateTimeInput(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	got, err := parseDateTimeInput("2025-04-30 09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 30, 8, 30, 0, 0, time.UTC), got)

	got, err = parseDateTimeInput("2025-04-30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDateTimeInput("tomorrow", time.UTC)
	require.Error(t, err)
}

func TestParseSwitch(t *testing.T) {
	for _, s := range []string{"on", "YES", "true", "1"} {
		v, err := parseSwitch(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "No", "false", "0"} {
		v, err := parseSwitch(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := parseSwitch("maybe")
	require.Error(t, err)
}
