// Package terminal holds the interactive helpers tasks use: prompts,
// password input, replaceable lines, waits and ANSI colours.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Default messages.
const (
	DefaultWaitMessage          = "Press any key to continue..."
	DefaultInvalidChoiceMessage = "This is not a valid option. Please try again."
)

// Terminal reads from in and writes to out. Reads block until a full line
// is available; there is no timeout.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	color bool

	sleep        func(time.Duration)
	readPassword func(fd int) ([]byte, error)

	WaitMessage          string
	InvalidChoiceMessage string
}

// New returns a terminal over in and out. Password input is read as a
// plain line unless in is a terminal *os.File.
func New(in io.Reader, out io.Writer, color bool) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Terminal{
		in:                   bufio.NewReader(in),
		out:                  out,
		fd:                   fd,
		color:                color,
		sleep:                time.Sleep,
		readPassword:         term.ReadPassword,
		WaitMessage:          DefaultWaitMessage,
		InvalidChoiceMessage: DefaultInvalidChoiceMessage,
	}
}

// ColorEnabled resolves a colour mode (auto, always, never) for f. Auto
// enables colour when NO_COLOR is unset and f is a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Read prints prompt and returns the trimmed line typed by the user. With
// choices, the prompt lists them and Read asks again until one of them is
// entered.
func (t *Terminal) Read(prompt string, choices ...string) (string, error) {
	if len(choices) > 0 {
		prompt += " [ " + strings.Join(choices, ", ") + " ]"
	}
	if prompt != "" {
		prompt += ": "
	}

	for {
		if _, err := io.WriteString(t.out, prompt); err != nil {
			return "", err
		}

		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if len(choices) == 0 || contains(choices, line) {
			return line, nil
		}
		t.Write(t.InvalidChoiceMessage)
	}
}

// Password prints prompt and reads a line without echo.
func (t *Terminal) Password(prompt string) (string, error) {
	if _, err := io.WriteString(t.out, prompt+": "); err != nil {
		return "", err
	}

	var (
		line string
		err  error
	)
	if t.fd >= 0 {
		var b []byte
		b, err = t.readPassword(t.fd)
		line = string(b)
	} else {
		line, err = t.readLine()
	}
	t.Write()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Write prints each line followed by a newline. With no lines it prints
// an empty line.
func (t *Terminal) Write(lines ...string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, l := range lines {
		_, _ = fmt.Fprintln(t.out, l)
	}
}

// WriteReplace overwrites the current line with text. Pass endLine once
// the line is final.
func (t *Terminal) WriteReplace(text string, endLine bool) {
	if endLine {
		text += "\n"
	}
	_, _ = io.WriteString(t.out, "\r\033[K"+text)
}

// Wait pauses. With countdown it prints the remaining seconds; with zero
// seconds and no countdown it waits for the user to press enter.
func (t *Terminal) Wait(seconds int, countdown bool) error {
	switch {
	case countdown:
		for n := seconds; n > 0; n-- {
			_, _ = fmt.Fprintf(t.out, "%d... ", n)
			t.sleep(time.Second)
		}
		t.Write()
	case seconds > 0:
		t.sleep(time.Duration(seconds) * time.Second)
	default:
		t.Write(t.WaitMessage)
		if _, err := t.Read(""); err != nil {
			return err
		}
	}
	return nil
}

// Color colours text when the terminal has colour enabled.
func (t *Terminal) Color(text, fg, bg string) (string, error) {
	if !t.color {
		if err := checkColors(fg, bg); err != nil {
			return "", err
		}
		return text, nil
	}
	return Color(text, fg, bg)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
