package app

import (
	"image/color"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const maxPasswordLen = 128

type secretAnswer struct {
	text string
	ok   bool
}

type secretRequest struct {
	title   string
	message string
	path    string
	reply   chan secretAnswer
}

// overlayPrompter lets the worker goroutine ask for a password through the
// in-window overlay. Each call blocks until Update answers it.
type overlayPrompter struct {
	requests chan<- secretRequest
	dialogs  dialogs
	path     string
}

func (p *overlayPrompter) AskSecret(title, message string) (string, bool) {
	reply := make(chan secretAnswer, 1)
	p.requests <- secretRequest{title: title, message: message, path: p.path, reply: reply}
	ans := <-reply
	return ans.text, ans.ok
}

func (p *overlayPrompter) SavePath() (string, bool) {
	return p.dialogs.SavePath()
}

type passwordPrompt struct {
	req     *secretRequest
	input   string
	focused bool

	panel  rect
	field  rect
	submit rect
	cancel rect
}

func (p *passwordPrompt) active() bool { return p.req != nil }

func (p *passwordPrompt) open(req secretRequest) {
	p.req = &req
	p.input = ""
	p.focused = true
}

func (p *passwordPrompt) answer(ok bool) {
	if p.req == nil {
		return
	}
	p.req.reply <- secretAnswer{text: p.input, ok: ok}
	p.req = nil
	p.input = ""
	p.focused = false
}

func (p *passwordPrompt) layout(w, h int) {
	pw, ph := 460, 210
	if pw > w-40 {
		pw = w - 40
	}
	if ph > h-40 {
		ph = h - 40
	}
	px := (w - pw) / 2
	py := (h - ph) / 2
	p.panel = rect{x: px, y: py, w: pw, h: ph}
	p.field = rect{x: px + 20, y: py + 84, w: pw - 40, h: 34}
	p.submit = rect{x: px + pw - 186, y: py + ph - 46, w: 80, h: 30}
	p.cancel = rect{x: px + pw - 96, y: py + ph - 46, w: 80, h: 30}
}

// update consumes keyboard and mouse input while the overlay is open.
func (p *passwordPrompt) update(ctrl bool) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.answer(false)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		p.answer(true)
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case !p.panel.contains(x, y):
			p.answer(false)
			return
		case p.field.contains(x, y):
			p.focused = true
		case p.submit.contains(x, y):
			p.answer(true)
			return
		case p.cancel.contains(x, y):
			p.answer(false)
			return
		default:
			p.focused = false
		}
	}
	if !p.focused {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
		_, size := utf8.DecodeLastRuneInString(p.input)
		if size <= 0 {
			size = 1
		}
		p.input = p.input[:len(p.input)-size]
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if clip, err := clipboard.ReadAll(); err == nil && clip != "" {
			p.append(strings.TrimRight(clip, "\r\n"))
		}
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || r == 0x7F || !utf8.ValidRune(r) {
			continue
		}
		p.append(string(r))
	}
}

func (p *passwordPrompt) append(s string) {
	p.input += s
	for len(p.input) > maxPasswordLen {
		_, size := utf8.DecodeLastRuneInString(p.input)
		p.input = p.input[:len(p.input)-size]
	}
}

func (a *App) drawPasswordPrompt(screen *ebiten.Image, w, h int) {
	p := &a.prompt
	if !p.active() {
		return
	}
	p.layout(w, h)

	drawFilledRect(screen, 0, 0, w, h, color.RGBA{R: 0, G: 0, B: 0, A: 90})
	r := p.panel
	drawFilledRect(screen, r.x, r.y, r.w, r.h, color.RGBA{R: 249, G: 251, B: 254, A: 255})
	drawBorder(screen, r, color.RGBA{R: 160, G: 176, B: 198, A: 255})

	titleFace := a.fonts.face(14, true)
	labelFace := a.fonts.face(12, false)
	text.Draw(screen, p.req.title, titleFace, r.x+20, r.y+30, color.RGBA{R: 24, G: 38, B: 56, A: 255})
	if p.req.path != "" {
		text.Draw(screen, filepath.Base(p.req.path), labelFace, r.x+20, r.y+54, color.RGBA{R: 52, G: 66, B: 92, A: 255})
	}
	text.Draw(screen, p.req.message, labelFace, r.x+20, r.y+74, color.RGBA{R: 52, G: 66, B: 92, A: 255})

	inputBg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	inputBorder := color.RGBA{R: 170, G: 184, B: 202, A: 255}
	if p.focused {
		inputBg = color.RGBA{R: 244, G: 249, B: 255, A: 255}
		inputBorder = color.RGBA{R: 77, G: 134, B: 205, A: 255}
	}
	drawFilledRect(screen, p.field.x, p.field.y, p.field.w, p.field.h, inputBg)
	drawBorder(screen, p.field, inputBorder)

	masked := strings.Repeat("*", utf8.RuneCountInString(p.input))
	text.Draw(screen, masked, labelFace, p.field.x+8, p.field.y+22, color.RGBA{R: 42, G: 56, B: 80, A: 255})
	if p.focused && (a.frameTick/30)%2 == 0 {
		caretX := p.field.x + 8 + measureString(labelFace, masked)
		ebitenutil.DrawLine(screen, float64(caretX), float64(p.field.y+7), float64(caretX), float64(p.field.y+p.field.h-7), color.RGBA{R: 21, G: 84, B: 164, A: 255})
	}

	drawFilledRect(screen, p.submit.x, p.submit.y, p.submit.w, p.submit.h, color.RGBA{R: 217, G: 233, B: 250, A: 255})
	drawFilledRect(screen, p.cancel.x, p.cancel.y, p.cancel.w, p.cancel.h, color.RGBA{R: 236, G: 241, B: 248, A: 255})
	drawCentered(screen, a.texts.Or("ok", "OK"), labelFace, p.submit, color.RGBA{R: 30, G: 66, B: 118, A: 255})
	drawCentered(screen, a.texts.Or("cancel", "Cancel"), labelFace, p.cancel, color.RGBA{R: 52, G: 66, B: 92, A: 255})
}
