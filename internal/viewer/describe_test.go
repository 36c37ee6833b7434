package viewer

import (
	"errors"
	"fmt"
	"testing"

	"pdfviewer/pkg/pdfdoc"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
		show    bool
	}{
		{"nil", nil, "", false},
		{"cancelled", ErrCancelled, "", false},
		{"required", ErrPasswordRequired, texts.T("password_required"), true},
		{"incorrect", fmt.Errorf("%w: %w", ErrPasswordIncorrect, pdfdoc.ErrInvalidPassword), texts.T("password_incorrect"), true},
		{"other", errors.New("disk full"), "disk full", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			title, msg, show := Describe(tc.err, texts)
			if show != tc.show || msg != tc.message {
				t.Fatalf("Describe = (%q, %q, %v), want message %q show %v", title, msg, show, tc.message, tc.show)
			}
			if show && title != texts.T("error") {
				t.Fatalf("unexpected title %q", title)
			}
		})
	}
}
