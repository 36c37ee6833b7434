// Package locale loads the UI string tables. A table that is missing,
// malformed or incomplete is replaced as a whole by the English one.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/text/language"
)

const Default = "en"

//go:embed locales/*.json
var builtin embed.FS

var ErrIncomplete = errors.New("locale: missing required keys")

var RequiredKeys = []string{
	"open",
	"set_password",
	"change_password",
	"file",
	"prev_page",
	"next_page",
	"password_prompt",
	"password_required",
	"password_incorrect",
	"done",
	"password_set_prompt",
	"password_set_done",
	"password_change_prompt",
	"password_change_new_prompt",
	"password_change_done",
	"error",
}

var (
	supported = []language.Tag{language.English, language.Japanese, language.Chinese}
	codes     = []string{"en", "ja", "zh"}
	matcher   = language.NewMatcher(supported)
)

type Mapping map[string]string

// T returns the string for key, or the key itself when absent.
func (m Mapping) T(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Or returns the string for an optional key, or def when absent.
func (m Mapping) Or(key, def string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return def
}

func (m Mapping) missing() []string {
	var out []string
	for _, k := range RequiredKeys {
		if _, ok := m[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Match maps a user supplied language argument ("ja", "ja-JP", "zh_CN") onto
// one of the bundled table codes. Anything unrecognised selects Default.
func Match(arg string) string {
	arg = strings.TrimSpace(strings.ReplaceAll(arg, "_", "-"))
	if arg == "" {
		return Default
	}
	tag, err := language.Parse(arg)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(codes) {
		return Default
	}
	return codes[idx]
}

// Load returns the bundled table for lang, falling back to English.
func Load(lang string) Mapping {
	m, err := LoadFS(builtin, "locales", lang)
	if err != nil {
		slog.Debug("locale fallback", "lang", lang, "err", err)
	}
	if m == nil {
		// The embedded English table is always complete; this only guards
		// against a broken build.
		return Mapping{}
	}
	return m
}

// LoadFS reads <dir>/<lang>.json from fsys. When that table cannot be used the
// English table is returned together with the reason, so callers can log it.
func LoadFS(fsys fs.FS, dir, lang string) (Mapping, error) {
	m, err := readTable(fsys, dir, lang)
	if err == nil {
		return m, nil
	}
	if lang == Default {
		return nil, err
	}
	fallback, ferr := readTable(fsys, dir, Default)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return fallback, err
}

func readTable(fsys fs.FS, dir, lang string) (Mapping, error) {
	b, err := fs.ReadFile(fsys, path.Join(dir, lang+".json"))
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", lang, err)
	}
	var m Mapping
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("locale %q: %w", lang, err)
	}
	if miss := m.missing(); len(miss) > 0 {
		return nil, fmt.Errorf("%w: %q lacks %s", ErrIncomplete, lang, strings.Join(miss, ", "))
	}
	return m, nil
}
