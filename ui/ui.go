package ui

import (
	"errors"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"KeyPulse/capture"
	"KeyPulse/control"
	"KeyPulse/i18n"
	"KeyPulse/macro"
)

const (
	replyTimeout = 200 * time.Millisecond
	rowSpacing   = 4
	footerGap    = 8
	helpFile     = "assets/help.json"
)

// App is what the widgets need from the application.
type App interface {
	EnqueueCommand(cmd control.Command)
	StartCapture(onResult func(capture.Result)) *capture.Session
	DefaultIntervalSeconds() float64
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
	ShowNotice(message string)
}

// send enqueues cmd and waits briefly for the loop to answer.
func send(a App, cmd control.Command) error {
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case err := <-reply:
		return err
	case <-time.After(replyTimeout):
		return nil
	}
}

// MainView renders the macro list and the footer controls. Refresh must be
// called on the fyne main goroutine.
type MainView struct {
	app  App
	list *fyne.Container

	emptyLabel   *widget.Label
	startAllBtn  *widget.Button
	stopAllBtn   *widget.Button
	runIndicator *canvas.Circle
}

// Refresh rebuilds the rows from a snapshot of the registry.
func (v *MainView) Refresh(macros []macro.Config) {
	v.list.RemoveAll()
	if len(macros) == 0 {
		v.list.Add(v.emptyLabel)
	}
	for _, m := range macros {
		v.list.Add(newMacroRow(v.app, m))
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(0, rowSpacing))
		v.list.Add(spacer)
	}
	v.list.Refresh()

	if anyRunning(macros) {
		v.startAllBtn.Hide()
		v.stopAllBtn.Show()
		v.runIndicator.FillColor = runningColor
	} else {
		v.startAllBtn.Show()
		v.stopAllBtn.Hide()
		v.runIndicator.FillColor = color.Transparent
	}
	v.runIndicator.Refresh()
}

func anyRunning(macros []macro.Config) bool {
	for _, m := range macros {
		if m.Running {
			return true
		}
	}
	return false
}

func newMacroRow(a App, m macro.Config) fyne.CanvasObject {
	id := m.ID

	enabled := widget.NewCheck("", nil)
	enabled.SetChecked(m.Enabled)
	enabled.OnChanged = func(on bool) {
		if err := send(a, control.Command{Type: control.CmdSetEnabled, ID: id, Enabled: on}); err != nil {
			a.ShowNotice(err.Error())
		}
	}

	status := widget.NewIcon(theme.MediaPauseIcon())
	if m.Running {
		status.SetResource(theme.NewSuccessThemedResource(theme.MediaPlayIcon()))
	}

	name := widget.NewLabelWithStyle(m.DisplayName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	interval := widget.NewLabel(i18n.Tf("every %s s", macro.FormatInterval(m.IntervalSeconds)))

	toggle := widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), func() {
		if err := send(a, control.Command{Type: control.CmdStartOne, ID: id}); err != nil {
			a.ShowNotice(err.Error())
		}
	})
	if m.Running {
		toggle.SetText(i18n.T("Stop"))
		toggle.SetIcon(theme.MediaStopIcon())
		toggle.OnTapped = func() {
			if err := send(a, control.Command{Type: control.CmdStopOne, ID: id}); err != nil {
				a.ShowNotice(err.Error())
			}
		}
	}
	if !m.Enabled {
		toggle.Disable()
	}

	remove := widget.NewButtonWithIcon(i18n.T("Remove"), theme.DeleteIcon(), func() {
		if err := send(a, control.Command{Type: control.CmdRemove, ID: id}); err != nil {
			a.ShowNotice(err.Error())
		}
	})
	remove.Importance = widget.DangerImportance

	left := container.NewHBox(enabled, status, name, interval)
	right := container.NewHBox(toggle, remove)
	return container.NewBorder(nil, nil, left, right)
}

// BuildFooter returns the add/start all/stop all controls and the help icon.
func (v *MainView) BuildFooter(w fyne.Window) fyne.CanvasObject {
	a := v.app

	addButton := widget.NewButtonWithIcon(i18n.T("Add macro"), theme.ContentAddIcon(), func() {
		ShowAddDialog(a, w)
	})
	addButton.Importance = widget.HighImportance

	v.startAllBtn = widget.NewButtonWithIcon(i18n.T("Start all"), theme.MediaPlayIcon(), func() {
		if err := send(a, control.Command{Type: control.CmdStartAll}); err != nil {
			a.ShowNotice(err.Error())
		}
	})
	v.stopAllBtn = widget.NewButtonWithIcon(i18n.T("Stop all"), theme.MediaStopIcon(), func() {
		if err := send(a, control.Command{Type: control.CmdStopAll}); err != nil {
			a.ShowNotice(err.Error())
		}
	})
	v.stopAllBtn.Hide()
	controlStack := container.NewStack(v.startAllBtn, v.stopAllBtn)

	v.runIndicator = canvas.NewCircle(color.Transparent)
	v.runIndicator.StrokeColor = runningColor
	v.runIndicator.StrokeWidth = 1
	indicator := container.NewGridWrap(fyne.NewSize(10, 10), v.runIndicator)

	buttonsSpacer := canvas.NewRectangle(color.Transparent)
	buttonsSpacer.SetMinSize(fyne.NewSize(footerGap, 0))

	helpButton := NewTappableContainer(widget.NewIcon(theme.QuestionIcon()), func() {
		a.ShowInfoDialog(i18n.T("Help"), helpFile, fyne.NewSize(460, 320))
	}, nil)

	controls := container.NewHBox(
		layout.NewSpacer(),
		addButton,
		buttonsSpacer,
		controlStack,
		container.NewCenter(indicator),
		layout.NewSpacer(),
	)

	return container.NewBorder(nil, nil, container.NewVBox(layout.NewSpacer(), helpButton), nil, controls)
}

// CreateMainWindow builds the window and returns it with its view.
func CreateMainWindow(a App, fyneApp fyne.App, width, height float32) (fyne.Window, *MainView) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "KeyPulse"
	}
	w := fyneApp.NewWindow(title)

	v := &MainView{
		app:        a,
		list:       container.NewVBox(),
		emptyLabel: widget.NewLabel(i18n.T("No macros yet. Use \"Add macro\" to create one.")),
	}
	v.emptyLabel.Wrapping = fyne.TextWrapWord
	footer := v.BuildFooter(w)

	scroll := container.NewVScroll(container.NewPadded(v.list))
	w.SetContent(container.NewBorder(nil, container.NewPadded(footer), nil, nil, scroll))
	w.Resize(fyne.NewSize(width, height))

	v.Refresh(nil)
	return w, v
}

// captureMessage maps a capture failure to the text shown in the add dialog.
func captureMessage(err error) string {
	if errors.Is(err, capture.ErrPermissionDenied) {
		return i18n.T("KeyPulse needs Accessibility permission. Open System Settings > Privacy & Security > Accessibility and add KeyPulse (or your terminal), then try again.")
	}
	return i18n.T("Key capture failed. Make sure no other program holds the keyboard, then try again.")
}

type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
