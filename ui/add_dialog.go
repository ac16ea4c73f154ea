package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"KeyPulse/capture"
	"KeyPulse/control"
	"KeyPulse/i18n"
	"KeyPulse/key"
	"KeyPulse/macro"
)

// newDraft validates the dialog input.
func newDraft(k key.Token, intervalText string) (control.Draft, error) {
	if k.IsZero() {
		return control.Draft{}, macro.ErrInvalidKey
	}
	seconds, err := macro.ParseInterval(intervalText)
	if err != nil {
		return control.Draft{}, err
	}
	return control.Draft{DisplayName: k.DisplayName(), Key: k, IntervalSeconds: seconds}, nil
}

// draftMessage maps a rejected draft to the inline error text.
func draftMessage(err error) string {
	switch {
	case errors.Is(err, macro.ErrInvalidKey):
		return i18n.T("Please capture a key first.")
	case errors.Is(err, macro.ErrInvalidInterval):
		return i18n.T("Invalid interval: enter a positive number (e.g. 0.5).")
	}
	return err.Error()
}

// ShowAddDialog opens the "add macro" form. Closing the dialog while a
// capture is pending cancels it.
func ShowAddDialog(a App, w fyne.Window) {
	var (
		captured key.Token
		session  *capture.Session
	)

	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance
	errLabel.Wrapping = fyne.TextWrapWord
	errLabel.Hide()
	showErr := func(msg string) {
		errLabel.SetText(msg)
		errLabel.Show()
	}

	keyLabel := widget.NewLabel(i18n.T("Key: not set"))

	captureBtn := widget.NewButton(i18n.T("Set key"), nil)
	captureBtn.OnTapped = func() {
		if session != nil {
			session.Cancel()
		}
		errLabel.Hide()
		captureBtn.SetText(i18n.T("Press a key..."))
		captureBtn.Disable()

		session = a.StartCapture(func(r capture.Result) {
			captureBtn.SetText(i18n.T("Set key"))
			captureBtn.Enable()
			if r.Err != nil {
				showErr(captureMessage(r.Err))
				return
			}
			captured = r.Key
			keyLabel.SetText(i18n.Tf("Key: %s", r.Key.DisplayName()))
		})
	}

	intervalEntry := widget.NewEntry()
	intervalEntry.SetPlaceHolder(i18n.T("e.g. 0.1, 1, 2.5"))
	intervalEntry.SetText(macro.FormatInterval(a.DefaultIntervalSeconds()))

	form := widget.NewForm(
		widget.NewFormItem("", container.NewBorder(nil, nil, nil, captureBtn, keyLabel)),
		widget.NewFormItem(i18n.T("Interval (seconds)"), intervalEntry),
	)

	d := dialog.NewCustomWithoutButtons(i18n.T("Add macro"), container.NewVBox(form, errLabel), w)

	submit := func() {
		draft, err := newDraft(captured, intervalEntry.Text)
		if err != nil {
			showErr(draftMessage(err))
			return
		}
		if err := send(a, control.Command{Type: control.CmdAdd, Draft: draft}); err != nil {
			showErr(draftMessage(err))
			return
		}
		d.Hide()
	}
	intervalEntry.OnSubmitted = func(string) { submit() }

	okBtn := widget.NewButton(i18n.T("OK"), submit)
	okBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton(i18n.T("Cancel"), d.Hide)
	d.SetButtons([]fyne.CanvasObject{cancelBtn, okBtn})

	d.SetOnClosed(func() {
		if session != nil {
			session.Cancel()
		}
	})
	d.Resize(fyne.NewSize(380, 0))
	d.Show()
}
