package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"pdfviewer/internal/locale"
	"pdfviewer/internal/render"
	"pdfviewer/internal/ui"
	"pdfviewer/internal/viewer"
)

const (
	actionOpen           = "open"
	actionSetPassword    = "set_password"
	actionChangePassword = "change_password"
	actionPrev           = "prev_page"
	actionNext           = "next_page"

	minWindowW = 420
	minWindowH = 360
)

type rect struct {
	x int
	y int
	w int
	h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

type actionButton struct {
	id       string
	label    string
	r        rect
	disabled bool
}

// dialogs is the native side of the shell: file pickers and modal messages.
type dialogs interface {
	OpenPath(title string) (string, error)
	SavePath() (string, bool)
	Error(title, message string)
	Info(title, message string)
}

// outcome is what a worker hands back to the update loop.
type outcome struct {
	action  string
	session *viewer.Session
	dest    string
	err     error
}

type App struct {
	theme   ui.Theme
	texts   locale.Mapping
	codec   viewer.Codec
	dialogs dialogs
	fonts   fontBank

	session   *viewer.Session
	pageImage image.Image

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image

	status    string
	busy      bool
	results   chan outcome
	prompts   chan secretRequest
	prompt    passwordPrompt
	frameTick uint64

	topActions []actionButton
	navActions []actionButton

	screenW int
	screenH int
}

func New(lang string, codec viewer.Codec) *App {
	return &App{
		theme:      ui.DefaultTheme(),
		texts:      locale.Load(lang),
		codec:      codec,
		dialogs:    nativeDialogs{},
		fonts:      newFontBank(lang),
		results:    make(chan outcome, 1),
		prompts:    make(chan secretRequest),
		topActions: make([]actionButton, 0, 3),
		navActions: make([]actionButton, 0, 2),
	}
}

func (a *App) Run() error {
	w, h := a.theme.WindowSize()
	ebiten.SetWindowTitle("PDF Viewer")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) Update() error {
	a.frameTick++
	a.drainWorker()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if a.prompt.active() {
		w, h := a.currentViewportSize()
		a.prompt.layout(w, h)
		a.prompt.update(ctrl)
		return nil
	}
	if a.busy {
		return nil
	}

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.start(actionOpen)
	case ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.start(actionChangePassword)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.start(actionSetPassword)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.navigate(a.session.Next)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.navigate(a.session.Previous)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.navigate(a.session.First)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.navigate(a.session.Last)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if id, ok := a.actionAt(x, y); ok {
			a.invokeAction(id)
		}
	}
	return nil
}

// drainWorker picks up password requests and finished operations without
// blocking the frame.
func (a *App) drainWorker() {
	for {
		select {
		case req := <-a.prompts:
			a.prompt.open(req)
		case res := <-a.results:
			a.apply(res)
		default:
			return
		}
	}
}

func (a *App) actionAt(x, y int) (string, bool) {
	for _, group := range [][]actionButton{a.topActions, a.navActions} {
		for _, btn := range group {
			if !btn.disabled && btn.r.contains(x, y) {
				return btn.id, true
			}
		}
	}
	return "", false
}

func (a *App) invokeAction(id string) {
	switch id {
	case actionOpen, actionSetPassword, actionChangePassword:
		a.start(id)
	case actionPrev:
		a.navigate(a.session.Previous)
	case actionNext:
		a.navigate(a.session.Next)
	}
}

func (a *App) navigate(move func() bool) {
	if move() {
		a.refreshPage()
	}
}

// start runs one menu flow on a worker goroutine. Further actions are ignored
// until its outcome has been applied.
func (a *App) start(id string) {
	if a.busy {
		return
	}
	a.busy = true
	a.status = a.texts.T(id) + "..."
	go func() {
		a.results <- a.run(id)
	}()
}

func (a *App) run(id string) outcome {
	res := outcome{action: id}
	path, err := a.dialogs.OpenPath(a.texts.T(id))
	if err != nil {
		res.err = err
		return res
	}
	slog.Debug("action started", "action", id, "path", path)

	prompt := &overlayPrompter{requests: a.prompts, dialogs: a.dialogs, path: path}
	switch id {
	case actionOpen:
		res.session, res.err = viewer.Unlock(path, a.codec, prompt, a.texts)
	case actionSetPassword:
		res.dest, res.err = viewer.SetPassword(path, a.codec, prompt, a.texts)
	case actionChangePassword:
		res.dest, res.err = viewer.ChangePassword(path, a.codec, prompt, a.texts)
	}
	a.notify(res)
	return res
}

// notify shows the modal result of a flow. It runs on the worker so the shell
// stays busy until the user dismisses the message.
func (a *App) notify(res outcome) {
	if res.err != nil {
		if title, msg, show := viewer.Describe(res.err, a.texts); show {
			a.dialogs.Error(title, msg)
		}
		return
	}
	switch res.action {
	case actionSetPassword:
		a.dialogs.Info(a.texts.T("done"), a.texts.T("password_set_done"))
	case actionChangePassword:
		a.dialogs.Info(a.texts.T("done"), a.texts.T("password_change_done"))
	}
}

// apply runs on the update goroutine. A failed flow leaves the current
// session on screen.
func (a *App) apply(res outcome) {
	a.busy = false
	switch {
	case errors.Is(res.err, viewer.ErrCancelled):
		a.status = ""
	case res.err != nil:
		slog.Debug("action failed", "action", res.action, "err", res.err)
		a.status = a.texts.T("error")
	case res.action == actionOpen:
		a.session = res.session
		a.refreshPage()
		a.status = ""
		slog.Debug("session replaced", "path", res.session.Path, "pages", res.session.PageCount())
	default:
		a.status = a.texts.T("done") + ": " + filepath.Base(res.dest)
	}
}

func (a *App) refreshPage() {
	a.pageImage = nil
	if page := a.session.Page(); page != nil {
		a.pageImage = render.Fit(page, a.theme.ViewportW, a.theme.ViewportH)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil || a.frameBuffer.W != w || a.frameBuffer.H != h {
		a.frameBuffer = render.NewFrameBuffer(w, h)
		a.canvas = ebiten.NewImage(w, h)
	}

	layout := ui.DrawShell(a.frameBuffer, a.pageImage, a.theme)
	menuFace := a.fonts.face(13, false)
	captionFace := a.fonts.face(13, true)
	statusFace := a.fonts.face(12, false)

	captionW := measureString(captionFace, a.texts.T("file")) + 24
	a.layoutTopActions(menuFace, layout, captionW)
	a.layoutNavActions(menuFace, layout)

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	drawCentered(screen, a.texts.T("file"), captionFace, rect{x: 0, y: 0, w: captionW, h: layout.MenuH}, color.RGBA{R: 220, G: 230, B: 245, A: 255})
	for _, btn := range a.topActions {
		drawCentered(screen, btn.label, menuFace, btn.r, labelColor(btn, color.RGBA{R: 244, G: 248, B: 255, A: 255}))
	}
	for _, btn := range a.navActions {
		drawCentered(screen, btn.label, menuFace, btn.r, labelColor(btn, color.RGBA{R: 30, G: 66, B: 118, A: 255}))
	}

	indicator := "- / -"
	if n := a.session.PageCount(); n > 0 {
		indicator = fmt.Sprintf("%d / %d", a.session.Index+1, n)
	}
	tw := measureString(menuFace, indicator)
	text.Draw(screen, indicator, menuFace, layout.NavCenter-tw/2, layout.NavY+layout.NavH/2+5, color.RGBA{R: 42, G: 56, B: 80, A: 255})

	name := ""
	if a.session != nil {
		name = filepath.Base(a.session.Path)
	}
	statusLeft := fmt.Sprintf("[ %s ]", name)
	if a.status != "" {
		statusLeft += " " + a.status
	}
	text.Draw(screen, statusLeft, statusFace, 12, layout.StatusY+layout.StatusH/2+5, color.RGBA{R: 42, G: 56, B: 80, A: 255})

	a.drawPasswordPrompt(screen, w, h)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth < minWindowW {
		outsideWidth = minWindowW
	}
	if outsideHeight < minWindowH {
		outsideHeight = minWindowH
	}
	a.screenW = outsideWidth
	a.screenH = outsideHeight
	return outsideWidth, outsideHeight
}

func (a *App) currentViewportSize() (int, int) {
	if a.screenW > 0 && a.screenH > 0 {
		return a.screenW, a.screenH
	}
	return a.theme.WindowSize()
}

func (a *App) layoutTopActions(face font.Face, layout ui.Layout, startX int) {
	a.topActions = a.topActions[:0]
	x := startX
	y := 4
	h := layout.MenuH - 8
	buttons := []actionButton{
		{id: actionOpen, label: a.texts.T(actionOpen)},
		{id: actionSetPassword, label: a.texts.T(actionSetPassword)},
		{id: actionChangePassword, label: a.texts.T(actionChangePassword)},
	}
	mx, my := ebiten.CursorPosition()
	for _, btn := range buttons {
		w := measureString(face, btn.label) + 28
		if w < 64 {
			w = 64
		}
		btn.r = rect{x: x, y: y, w: w, h: h}
		btn.disabled = a.busy
		bg := color.RGBA{R: 46, G: 84, B: 145, A: 255}
		if !btn.disabled && btn.r.contains(mx, my) {
			bg = color.RGBA{R: 58, G: 102, B: 172, A: 255}
		}
		a.frameBuffer.FillRect(btn.r.x, btn.r.y, btn.r.w, btn.r.h, bg)
		a.frameBuffer.StrokeRect(btn.r.x, btn.r.y, btn.r.w, btn.r.h, 1, color.RGBA{R: 27, G: 54, B: 97, A: 255})
		a.topActions = append(a.topActions, btn)
		x += w + 8
	}
}

func (a *App) layoutNavActions(face font.Face, layout ui.Layout) {
	a.navActions = a.navActions[:0]
	h := layout.NavH - 12
	y := layout.NavY + 6
	gap := 60
	prev := actionButton{id: actionPrev, label: a.texts.T(actionPrev)}
	next := actionButton{id: actionNext, label: a.texts.T(actionNext)}
	pw := measureString(face, prev.label) + 28
	nw := measureString(face, next.label) + 28
	prev.r = rect{x: layout.NavCenter - gap - pw, y: y, w: pw, h: h}
	next.r = rect{x: layout.NavCenter + gap, y: y, w: nw, h: h}

	n := a.session.PageCount()
	prev.disabled = a.busy || n == 0 || a.session.Index <= 0
	next.disabled = a.busy || n == 0 || a.session.Index >= n-1

	mx, my := ebiten.CursorPosition()
	for _, btn := range []actionButton{prev, next} {
		bg := color.RGBA{R: 217, G: 233, B: 250, A: 255}
		switch {
		case btn.disabled:
			bg = color.RGBA{R: 236, G: 241, B: 248, A: 255}
		case btn.r.contains(mx, my):
			bg = color.RGBA{R: 196, G: 220, B: 246, A: 255}
		}
		a.frameBuffer.FillRect(btn.r.x, btn.r.y, btn.r.w, btn.r.h, bg)
		a.frameBuffer.StrokeRect(btn.r.x, btn.r.y, btn.r.w, btn.r.h, 1, a.theme.Border)
		a.navActions = append(a.navActions, btn)
	}
}

func labelColor(btn actionButton, c color.RGBA) color.RGBA {
	if btn.disabled {
		return color.RGBA{R: 140, G: 150, B: 166, A: 255}
	}
	return c
}

func drawCentered(screen *ebiten.Image, label string, face font.Face, r rect, c color.RGBA) {
	tw := measureString(face, label)
	ascent := face.Metrics().Ascent.Round()
	descent := face.Metrics().Descent.Round()
	x := r.x + (r.w-tw)/2
	baseline := r.y + (r.h+ascent+descent)/2 - descent
	text.Draw(screen, label, face, x, baseline, c)
}

// drawFilledRect draws a filled rectangle on the screen by drawing horizontal lines.
func drawFilledRect(screen *ebiten.Image, x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		ebitenutil.DrawLine(screen, float64(x), float64(yy), float64(x+w), float64(yy), c)
	}
}

func drawBorder(screen *ebiten.Image, r rect, c color.RGBA) {
	ebitenutil.DrawLine(screen, float64(r.x), float64(r.y), float64(r.x+r.w), float64(r.y), c)
	ebitenutil.DrawLine(screen, float64(r.x), float64(r.y+r.h), float64(r.x+r.w), float64(r.y+r.h), c)
	ebitenutil.DrawLine(screen, float64(r.x), float64(r.y), float64(r.x), float64(r.y+r.h), c)
	ebitenutil.DrawLine(screen, float64(r.x+r.w), float64(r.y), float64(r.x+r.w), float64(r.y+r.h), c)
}
