package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(input string) (*Terminal, *bytes.Buffer, *[]time.Duration) {
	var out bytes.Buffer
	var slept []time.Duration
	t := New(strings.NewReader(input), &out, false)
	t.sleep = func(d time.Duration) { slept = append(slept, d) }
	return t, &out, &slept
}

func TestRead(t *testing.T) {
	term, out, _ := newTest("  hello  \n")

	got, err := term.Read("Name")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Name: ", out.String())
}

func TestReadRepromptsUntilValidChoice(t *testing.T) {
	term, out, _ := newTest("maybe\nyes\n")

	got, err := term.Read("Continue", "yes", "no")
	require.NoError(t, err)
	assert.Equal(t, "yes", got)

	want := "Continue [ yes, no ]: " + DefaultInvalidChoiceMessage + "\n" + "Continue [ yes, no ]: "
	assert.Equal(t, want, out.String())
}

func TestReadLastLineWithoutNewline(t *testing.T) {
	term, _, _ := newTest("no")

	got, err := term.Read("", "yes", "no")
	require.NoError(t, err)
	assert.Equal(t, "no", got)
}

func TestReadEOF(t *testing.T) {
	term, _, _ := newTest("")

	_, err := term.Read("Name")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPasswordFromPipe(t *testing.T) {
	term, out, _ := newTest("s3cret\n")

	got, err := term.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPasswordFromTerminal(t *testing.T) {
	term, _, _ := newTest("")
	term.fd = 0
	term.readPassword = func(fd int) ([]byte, error) { return []byte("hidden\n"), nil }

	got, err := term.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "hidden", got)

	term.readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = term.Password("Password")
	assert.ErrorContains(t, err, "read password: boom")
}

func TestWrite(t *testing.T) {
	term, out, _ := newTest("")

	term.Write("a", "b")
	term.Write()
	assert.Equal(t, "a\nb\n\n", out.String())
}

func TestWriteReplace(t *testing.T) {
	term, out, _ := newTest("")

	term.WriteReplace("50%", false)
	term.WriteReplace("100%", true)
	assert.Equal(t, "\r\033[K50%\r\033[K100%\n", out.String())
}

func TestWaitCountdown(t *testing.T) {
	term, out, slept := newTest("")

	require.NoError(t, term.Wait(3, true))
	assert.Equal(t, "3... 2... 1... \n", out.String())
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, *slept)
}

func TestWaitSeconds(t *testing.T) {
	term, out, slept := newTest("")

	require.NoError(t, term.Wait(2, false))
	assert.Empty(t, out.String())
	assert.Equal(t, []time.Duration{2 * time.Second}, *slept)
}

func TestWaitForKey(t *testing.T) {
	term, out, slept := newTest("\n")

	require.NoError(t, term.Wait(0, false))
	assert.Equal(t, DefaultWaitMessage+"\n", out.String())
	assert.Empty(t, *slept)
}

func TestColor(t *testing.T) {
	s, err := Color("ok", "green", "")
	require.NoError(t, err)
	assert.Equal(t, "\033[0;32mok\033[0m", s)

	s, err = Color("warn", "yellow", "blue")
	require.NoError(t, err)
	assert.Equal(t, "\033[1;33m\033[44mwarn\033[0m", s)

	_, err = Color("x", "pink", "")
	assert.EqualError(t, err, "invalid foreground color: pink")

	_, err = Color("x", "red", "pink")
	assert.EqualError(t, err, "invalid background color: pink")
}

func TestTerminalColorRespectsMode(t *testing.T) {
	plain := New(strings.NewReader(""), io.Discard, false)
	s, err := plain.Color("x", "red", "")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = plain.Color("x", "pink", "")
	assert.Error(t, err, "names are checked even without colour")

	coloured := New(strings.NewReader(""), io.Discard, true)
	s, err = coloured.Color("x", "red", "")
	require.NoError(t, err)
	assert.Equal(t, "\033[0;31mx\033[0m", s)
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "x", Colorize("x", "red", false))
	assert.Equal(t, "x", Colorize("x", "pink", true))
	assert.Equal(t, "\033[0;31mx\033[0m", Colorize("x", "red", true))
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", nil))
	assert.False(t, ColorEnabled("auto", nil))
}
