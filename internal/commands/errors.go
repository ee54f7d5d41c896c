package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by errors returned from planstatus commands.
const (
	CodeCommandRejected = "PLANSTATUS_COMMAND_REJECTED"
	CodeRunCanceled     = "PLANSTATUS_RUN_CANCELED"
	CodeRunTimedOut     = "PLANSTATUS_RUN_TIMED_OUT"
	CodeRunInterrupted  = "PLANSTATUS_RUN_INTERRUPTED"
	CodeRunFailed       = "PLANSTATUS_RUN_FAILED"
)

// tag categorises err unless an inner layer already did.
func tag(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func rejected(err error) error {
	return tag(err, goerrors.CategoryValidation, "planstatus: command rejected", CodeCommandRejected)
}

func interrupted(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, goerrors.CategoryCommand, "planstatus: run timed out", CodeRunTimedOut)
	case errors.Is(err, context.Canceled):
		return tag(err, goerrors.CategoryCommand, "planstatus: run canceled", CodeRunCanceled)
	default:
		return tag(err, goerrors.CategoryCommand, "planstatus: run interrupted", CodeRunInterrupted)
	}
}

func failed(err error) error {
	return tag(err, goerrors.CategoryCommand, "planstatus: run failed", CodeRunFailed)
}
