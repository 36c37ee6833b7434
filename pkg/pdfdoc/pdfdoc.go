package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const aesKeyLength = 256

var (
	ErrNeedsPassword    = errors.New("pdfdoc: document is encrypted")
	ErrPasswordRequired = errors.New("pdfdoc: password required")
	ErrInvalidPassword  = errors.New("pdfdoc: invalid password")
	ErrAlreadyEncrypted = errors.New("pdfdoc: document is already encrypted")
	ErrNoRasterizer     = errors.New("pdfdoc: no rasterizer configured")
)

type Info struct {
	Encrypted bool
	Pages     int
}

// Rasterizer turns unencrypted (or owner-only encrypted) PDF bytes into one
// image per page.
type Rasterizer interface {
	Rasterize(data []byte) ([]image.Image, error)
}

// Codec opens, encrypts and decrypts PDF documents held in memory.
type Codec struct {
	Raster Rasterizer
}

func NewCodec(r Rasterizer) *Codec {
	return &Codec{Raster: r}
}

var configOnce sync.Once

// newConfig keeps pdfcpu away from the user's config directory.
func newConfig(userPW, ownerPW string) *model.Configuration {
	configOnce.Do(api.DisableConfigDir)
	if userPW == "" && ownerPW == "" {
		return model.NewDefaultConfiguration()
	}
	conf := model.NewAESConfiguration(userPW, ownerPW, aesKeyLength)
	conf.Permissions = model.PermissionsAll
	return conf
}

func Inspect(data []byte) (Info, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), newConfig("", ""))
	if err != nil {
		return Info{}, classify(err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Info{}, err
	}
	return Info{Encrypted: ctx.Encrypt != nil, Pages: ctx.PageCount}, nil
}

// Open rasterizes every page. An empty password probes the document as-is and
// reports ErrNeedsPassword when a user password is needed.
func (c *Codec) Open(data []byte, password string) ([]image.Image, error) {
	if c == nil || c.Raster == nil {
		return nil, ErrNoRasterizer
	}
	if password == "" {
		info, err := Inspect(data)
		if err != nil {
			return nil, err
		}
		pages, err := c.Raster.Rasterize(data)
		if err != nil {
			if info.Encrypted {
				return nil, ErrNeedsPassword
			}
			return nil, fmt.Errorf("pdfdoc: rasterize: %w", err)
		}
		return pages, nil
	}
	plain, err := Decrypt(data, password)
	if err != nil {
		return nil, err
	}
	pages, err := c.Raster.Rasterize(plain)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: rasterize: %w", err)
	}
	return pages, nil
}

func (c *Codec) Encrypt(data []byte, password string) ([]byte, error) {
	return Encrypt(data, password)
}

func (c *Codec) Decrypt(data []byte, password string) ([]byte, error) {
	return Decrypt(data, password)
}

// Encrypt copies every page of an unencrypted document into a new AES-256
// document protected by password. The password opens the result both as
// user and as owner.
func Encrypt(data []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	info, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if info.Encrypted {
		return nil, ErrAlreadyEncrypted
	}
	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, newConfig(password, password)); err != nil {
		return nil, fmt.Errorf("pdfdoc: encrypt: %w", classify(err))
	}
	return out.Bytes(), nil
}

func Decrypt(data []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, newConfig(password, password)); err != nil {
		if wrongPassword(err) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("pdfdoc: decrypt: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile replaces path with data through a temporary sibling file.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func classify(err error) error {
	if wrongPassword(err) {
		return ErrNeedsPassword
	}
	return err
}

// pdfcpu sometimes rewraps its sentinel with errors.Errorf.
func wrongPassword(err error) bool {
	return errors.Is(err, pdfcpu.ErrWrongPassword) || strings.Contains(err.Error(), "correct password")
}
