package viewer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"pdfviewer/internal/locale"
	"pdfviewer/pkg/pdfdoc"
)

var (
	ErrCancelled         = errors.New("viewer: cancelled")
	ErrPasswordRequired  = pdfdoc.ErrPasswordRequired
	ErrPasswordIncorrect = errors.New("viewer: password incorrect")
)

// Codec is the PDF library surface the viewer relies on.
type Codec interface {
	Open(data []byte, password string) ([]image.Image, error)
	Encrypt(data []byte, password string) ([]byte, error)
	Decrypt(data []byte, password string) ([]byte, error)
}

// Prompter asks the user for input and blocks until answered. ok is false
// when the user dismissed the prompt.
type Prompter interface {
	AskSecret(title, message string) (secret string, ok bool)
	SavePath() (path string, ok bool)
}

// Unlock opens path, asking for a password while the codec reports the
// document as encrypted. A wrong password ends the attempt; the user starts
// over from the Open action.
func Unlock(path string, codec Codec, prompt Prompter, texts locale.Mapping) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	pages, err := codec.Open(data, "")
	if err == nil {
		slog.Debug("opened document", "path", path, "pages", len(pages))
		return NewSession(path, "", pages), nil
	}
	if !errors.Is(err, pdfdoc.ErrNeedsPassword) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	for attempt := 1; ; attempt++ {
		slog.Debug("document needs password", "path", path, "attempt", attempt)
		password, ok := prompt.AskSecret(texts.T("open"), texts.T("password_prompt"))
		if !ok || password == "" {
			return nil, ErrPasswordRequired
		}
		pages, err = codec.Open(data, password)
		switch {
		case err == nil:
			slog.Debug("unlocked document", "path", path, "pages", len(pages))
			return NewSession(path, password, pages), nil
		case errors.Is(err, pdfdoc.ErrNeedsPassword):
			continue
		default:
			slog.Debug("unlock failed", "path", path, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrPasswordIncorrect, err)
		}
	}
}

// SetPassword writes an encrypted copy of the unprotected document at src to a
// user chosen destination and returns that destination.
func SetPassword(src string, codec Codec, prompt Prompter, texts locale.Mapping) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	password, ok := prompt.AskSecret(texts.T("set_password"), texts.T("password_set_prompt"))
	if !ok || password == "" {
		return "", ErrPasswordRequired
	}
	out, err := codec.Encrypt(data, password)
	if err != nil {
		return "", err
	}
	return save(prompt, out)
}

// ChangePassword re-encrypts the protected document at src under a new
// password. A wrong current password aborts without retry.
func ChangePassword(src string, codec Codec, prompt Prompter, texts locale.Mapping) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	current, ok := prompt.AskSecret(texts.T("change_password"), texts.T("password_change_prompt"))
	if !ok || current == "" {
		return "", ErrPasswordRequired
	}
	plain, err := codec.Decrypt(data, current)
	if err != nil {
		slog.Debug("decrypt failed", "path", src, "err", err)
		return "", fmt.Errorf("%w: %w", ErrPasswordIncorrect, err)
	}
	next, ok := prompt.AskSecret(texts.T("change_password"), texts.T("password_change_new_prompt"))
	if !ok || next == "" {
		return "", ErrPasswordRequired
	}
	out, err := codec.Encrypt(plain, next)
	if err != nil {
		return "", err
	}
	return save(prompt, out)
}

func save(prompt Prompter, data []byte) (string, error) {
	dst, ok := prompt.SavePath()
	if !ok || dst == "" {
		return "", ErrCancelled
	}
	if err := pdfdoc.WriteFile(dst, data); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	slog.Debug("wrote document", "path", dst, "bytes", len(data))
	return dst, nil
}
