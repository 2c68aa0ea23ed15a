package terminal

import "fmt"

var foreground = map[string]string{
	"black":        "0;30",
	"dark_gray":    "1;30",
	"blue":         "0;34",
	"light_blue":   "1;34",
	"green":        "0;32",
	"light_green":  "1;32",
	"cyan":         "0;36",
	"light_cyan":   "1;36",
	"red":          "0;31",
	"light_red":    "1;31",
	"purple":       "0;35",
	"light_purple": "1;35",
	"brown":        "0;33",
	"yellow":       "1;33",
	"light_gray":   "0;37",
	"white":        "1;37",
}

var background = map[string]string{
	"black":      "40",
	"red":        "41",
	"green":      "42",
	"yellow":     "43",
	"blue":       "44",
	"magenta":    "45",
	"cyan":       "46",
	"light_gray": "47",
}

const reset = "\033[0m"

// Color wraps text in the ANSI codes for fg and, if not empty, bg.
func Color(text, fg, bg string) (string, error) {
	if err := checkColors(fg, bg); err != nil {
		return "", err
	}

	s := "\033[" + foreground[fg] + "m"
	if bg != "" {
		s += "\033[" + background[bg] + "m"
	}
	return s + text + reset, nil
}

// Colorize is Color for callers with a fixed, known palette: unknown names
// and disabled colour both return text unchanged.
func Colorize(text, fg string, enabled bool) string {
	if !enabled {
		return text
	}
	s, err := Color(text, fg, "")
	if err != nil {
		return text
	}
	return s
}

func checkColors(fg, bg string) error {
	if _, ok := foreground[fg]; !ok {
		return fmt.Errorf("invalid foreground color: %s", fg)
	}
	if _, ok := background[bg]; bg != "" && !ok {
		return fmt.Errorf("invalid background color: %s", bg)
	}
	return nil
}
