package viewer

import (
	"errors"

	"pdfviewer/internal/locale"
)

// Describe turns an operation error into the title and text of the modal
// notification shown to the user. show is false for silent outcomes.
func Describe(err error, texts locale.Mapping) (title, message string, show bool) {
	switch {
	case err == nil, errors.Is(err, ErrCancelled):
		return "", "", false
	case errors.Is(err, ErrPasswordRequired):
		return texts.T("error"), texts.T("password_required"), true
	case errors.Is(err, ErrPasswordIncorrect):
		return texts.T("error"), texts.T("password_incorrect"), true
	default:
		return texts.T("error"), err.Error(), true
	}
}
