package dispatch

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/core/validation"
)

// FormatFunc prints err for the user.
type FormatFunc func(w io.Writer, err error)

// Handler is the last stop for errors of one invocation.
type Handler struct {
	stderr io.Writer
	logger *zap.Logger
	format FormatFunc
}

// NewHandler returns a handler printing to stderr with format. A nil logger
// logs nothing.
func NewHandler(stderr io.Writer, logger *zap.Logger, format FormatFunc) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{stderr: stderr, logger: logger, format: format}
}

// Handle logs err, prints it unless it was already reported, and returns
// the exit code. A nil err yields 0.
func (h *Handler) Handle(err error) int {
	if err == nil {
		return 0
	}

	e := Wrap("", err)
	code := e.ExitCode()

	log := h.logger.Error
	if userError(e) {
		log = h.logger.Warn
	}
	log("task failed",
		zap.String("task", e.Task),
		zap.Int("exit_code", code),
		zap.Bool("reported", e.Reported),
		zap.Error(e.Err))

	if e.Reported || h.format == nil || h.stderr == nil {
		return code
	}

	var cause error = e
	if e.Err != nil {
		cause = e.Err
	}
	h.format(h.stderr, cause)
	return code
}

// userError reports failures caused by the command line rather than by a
// task body: unknown tasks and rejected options.
func userError(e *Error) bool {
	var (
		unknown  *task.UnknownTaskError
		rejected *validation.OptionRejectedError
	)
	return e.Reported || errors.As(e, &unknown) || errors.As(e, &rejected)
}
