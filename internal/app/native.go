package app

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"

	"pdfviewer/internal/viewer"
)

// nativeDialogs wraps the platform file pickers and message boxes.
type nativeDialogs struct{}

func (nativeDialogs) OpenPath(title string) (string, error) {
	path, err := dialog.File().Filter("PDF files", "pdf").Title(title).Load()
	if errors.Is(err, dialog.ErrCancelled) || (err == nil && path == "") {
		return "", viewer.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

func (nativeDialogs) SavePath() (string, bool) {
	path, err := dialog.File().Filter("PDF files", "pdf").Save()
	if err != nil || path == "" {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		path += ".pdf"
	}
	return filepath.Clean(path), true
}

func (nativeDialogs) Error(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func (nativeDialogs) Info(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}
