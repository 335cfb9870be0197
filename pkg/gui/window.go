// Package gui is the fyne front end. It renders what the app.Controller tells it
// and forwards button presses back.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/japaniel/speakmeaning/pkg/app"
	"github.com/japaniel/speakmeaning/pkg/config"
)

var _ app.View = (*Window)(nil)

// Controller receives the user's actions.
type Controller interface {
	Lookup(word string)
	Speak()
	Clear()
	Close()
}

// Window is the main application window.
type Window struct {
	app    fyne.App
	window fyne.Window
	ctrl   Controller

	input     *widget.Entry
	defineBtn *widget.Button
	speakBtn  *widget.Button
	clearBtn  *widget.Button
	exitBtn   *widget.Button
	result    *widget.Label
	notice    *widget.Label
	status    *widget.Label
	progress  *widget.ProgressBarInfinite
}

// Dispatch runs f on the fyne main goroutine. Pass it as app.Options.Dispatch.
func Dispatch(f func()) {
	fyne.Do(f)
}

// New builds the window. Nothing reacts to input until Bind is called.
func New(a fyne.App, cfg config.WindowConfig) *Window {
	w := &Window{app: a}
	w.window = a.NewWindow(cfg.Title)
	w.window.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	w.input = widget.NewEntry()
	w.input.SetPlaceHolder("Enter a word")
	w.input.OnSubmitted = func(string) { w.onDefine() }

	w.defineBtn = widget.NewButton("Define", w.onDefine)
	w.defineBtn.Importance = widget.HighImportance
	w.speakBtn = widget.NewButton("Speak", w.onSpeak)
	w.speakBtn.Disable()
	w.clearBtn = widget.NewButton("Clear", w.onClear)
	w.exitBtn = widget.NewButton("Exit", w.onExit)

	inputRow := container.NewBorder(
		nil, nil,
		widget.NewLabel("Word:"),
		container.NewHBox(w.defineBtn, w.speakBtn, w.clearBtn, w.exitBtn),
		w.input,
	)

	w.result = widget.NewLabel("")
	w.result.Wrapping = fyne.TextWrapWord
	w.notice = widget.NewLabel("")
	w.notice.Wrapping = fyne.TextWrapWord
	w.notice.Importance = widget.WarningImportance
	w.notice.Hide()

	w.status = widget.NewLabel(app.StatusReady)
	w.status.TextStyle = fyne.TextStyle{Italic: true}
	w.progress = widget.NewProgressBarInfinite()
	w.progress.Hide()

	statusBar := container.NewBorder(widget.NewSeparator(), nil, w.status, nil, w.progress)

	content := container.NewBorder(
		container.NewVBox(inputRow, widget.NewSeparator()),
		statusBar,
		nil, nil,
		container.NewScroll(container.NewVBox(w.result, w.notice)),
	)
	w.window.SetContent(content)
	w.window.Canvas().Focus(w.input)

	return w
}

// Bind connects the buttons to c. Closing the window closes c.
func (w *Window) Bind(c Controller) {
	w.ctrl = c
	w.window.SetOnClosed(c.Close)
}

// ShowAndRun shows the window and runs the fyne event loop until the app quits.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

func (w *Window) onDefine() {
	if w.ctrl != nil {
		w.ctrl.Lookup(w.input.Text)
	}
}

func (w *Window) onSpeak() {
	if w.ctrl != nil {
		w.ctrl.Speak()
	}
}

func (w *Window) onClear() {
	if w.ctrl != nil {
		w.ctrl.Clear()
	}
}

func (w *Window) onExit() {
	if w.ctrl != nil {
		w.ctrl.Close()
	}
	w.app.Quit()
}

// SetBusy toggles the activity indicator. Input stays live so a newer query can
// supersede the pending one.
func (w *Window) SetBusy(busy bool) {
	if busy {
		w.progress.Show()
		w.progress.Start()
		return
	}
	w.progress.Stop()
	w.progress.Hide()
}

func (w *Window) SetStatus(text string) { w.status.SetText(text) }

func (w *Window) SetSpeakEnabled(enabled bool) {
	if enabled {
		w.speakBtn.Enable()
	} else {
		w.speakBtn.Disable()
	}
}

func (w *Window) ShowResult(text string) {
	w.hideNotice()
	w.result.Importance = widget.MediumImportance
	w.result.SetText(text)
}

func (w *Window) ShowError(text string) {
	w.hideNotice()
	w.result.Importance = widget.DangerImportance
	w.result.SetText(text)
}

// ShowNotice adds a line under the result without replacing it.
func (w *Window) ShowNotice(text string) {
	w.notice.SetText(text)
	w.notice.Show()
}

func (w *Window) ClearResult() {
	w.hideNotice()
	w.result.Importance = widget.MediumImportance
	w.result.SetText("")
}

func (w *Window) ClearInput() {
	w.input.SetText("")
	w.window.Canvas().Focus(w.input)
}

func (w *Window) Notify(title, message string) {
	dialog.ShowInformation(title, message, w.window)
}

func (w *Window) hideNotice() {
	w.notice.SetText("")
	w.notice.Hide()
}
