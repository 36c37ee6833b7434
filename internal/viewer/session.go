package viewer

import "image"

// Session is the document currently on screen. It is replaced as a whole
// when another document is opened and is never written to disk.
type Session struct {
	Path     string
	Password string
	Pages    []image.Image
	Index    int
}

func NewSession(path, password string, pages []image.Image) *Session {
	s := &Session{Path: path, Password: password, Pages: pages, Index: -1}
	if len(pages) > 0 {
		s.Index = 0
	}
	return s
}

func (s *Session) PageCount() int {
	if s == nil {
		return 0
	}
	return len(s.Pages)
}

// Page returns the image at the current index, or nil without pages.
func (s *Session) Page() image.Image {
	if s == nil || s.Index < 0 || s.Index >= len(s.Pages) {
		return nil
	}
	return s.Pages[s.Index]
}

// Show selects page i. It reports whether the current page changed.
func (s *Session) Show(i int) bool {
	if s == nil || i < 0 || i >= len(s.Pages) || i == s.Index {
		return false
	}
	s.Index = i
	return true
}

func (s *Session) Next() bool {
	if s == nil {
		return false
	}
	return s.Show(s.Index + 1)
}

func (s *Session) Previous() bool {
	if s == nil || s.Index <= 0 {
		return false
	}
	return s.Show(s.Index - 1)
}

func (s *Session) First() bool {
	return s.Show(0)
}

func (s *Session) Last() bool {
	return s.Show(s.PageCount() - 1)
}
