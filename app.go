// Package main contains the application wiring and the AppManager which
// coordinates the macro engine, key capture, audio cues and the UI.
//
// Maintenance notes / tips:
//   - Concurrency model: UI intents are control.Commands posted to `cmdCh`
//     and handled in order by `commandLoop`. The loop forwards them to the
//     macro.Engine, which serializes every registry and scheduler mutation
//     (timer ticks included) on its own goroutine. Nothing here touches
//     macro state directly.
//   - The engine calls back through MacrosChanged/InjectionFailed from its
//     loop. Those callbacks only hand snapshots to fyne.Do or to a goroutine;
//     calling back into the engine from them would deadlock.
//   - `cmdCh` is buffered. EnqueueCommand drops a command if the channel
//     stays full for a short while rather than blocking the UI.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gen2brain/beeep"

	"KeyPulse/audio"
	"KeyPulse/capture"
	"KeyPulse/config"
	"KeyPulse/control"
	"KeyPulse/i18n"
	"KeyPulse/inject"
	"KeyPulse/keyhook"
	"KeyPulse/macro"
	"KeyPulse/ui"
)

var errUnknownCommand = errors.New("unknown command")

// cuePlayer is satisfied by *audio.Player.
type cuePlayer interface {
	Play(c audio.Cue)
}

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	view       *ui.MainView
	closing    atomic.Bool

	settings *config.Settings
	engine   *macro.Engine
	listener capture.Listener
	cues     cuePlayer
	content  config.AppContentReader

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	failMu  sync.Mutex
	failing map[string]bool

	notice func(message string)
	notify func(title, message string) error
}

// NewAppManager creates a new application manager backed by the OS
// injection and capture primitives.
func NewAppManager(content embed.FS, settings *config.Settings) *AppManager {
	var cues cuePlayer
	if settings.Sound {
		cues = audio.NewPlayer()
	}
	return newAppManager(content, settings, inject.NewRobot(settings.PressHold()), keyhook.NewListener(), cues)
}

func newAppManager(content config.AppContentReader, settings *config.Settings, inj macro.Injector, l capture.Listener, cues cuePlayer, opts ...macro.Option) *AppManager {
	a := &AppManager{
		settings: settings,
		listener: l,
		cues:     cues,
		content:  content,
		failing:  make(map[string]bool),
	}
	a.notice = a.showNoticeDialog
	a.notify = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}

	opts = append([]macro.Option{macro.WithObserver(a), macro.WithDebug(settings.Debug)}, opts...)
	a.engine = macro.NewEngine(inj, opts...)

	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// AttachWindow connects the window and view created by the ui package.
func (a *AppManager) AttachWindow(w fyne.Window, v *ui.MainView) {
	a.mainWindow = w
	a.view = v
	v.Refresh(a.engine.List())
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping %s command", cmd.Type)
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			err := a.handle(cmd)
			if err != nil {
				log.Printf("Command %s failed: %v", cmd.Type, err)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

func (a *AppManager) handle(cmd control.Command) error {
	switch cmd.Type {
	case control.CmdAdd:
		d := cmd.Draft
		cfg, err := a.engine.Add(d.DisplayName, d.Key, d.IntervalSeconds)
		if err == nil {
			log.Printf("Added macro %s: %s every %ss.", cfg.ID, cfg.Key, macro.FormatInterval(cfg.IntervalSeconds))
		}
		return err
	case control.CmdRemove:
		return a.engine.Remove(cmd.ID)
	case control.CmdSetEnabled:
		return a.engine.SetEnabled(cmd.ID, cmd.Enabled)
	case control.CmdStartOne:
		return a.engine.StartOne(cmd.ID)
	case control.CmdStopOne:
		return a.engine.StopOne(cmd.ID)
	case control.CmdStartAll:
		res, err := a.engine.StartAll()
		if err != nil {
			return err
		}
		switch res.Outcome {
		case macro.OutcomeNoMacros:
			a.notice(i18n.T("Add at least one macro first."))
		case macro.OutcomeNoneEnabled:
			a.notice(i18n.T("No enabled macros to start."))
		case macro.OutcomeStarted:
			log.Printf("Started %d macros.", res.Started)
			a.play(audio.CueStart)
		}
		return nil
	case control.CmdStopAll:
		n, err := a.engine.StopAll()
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("Stopped %d macros.", n)
			a.play(audio.CueStop)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", errUnknownCommand, cmd.Type)
}

// MacrosChanged re-renders the list. It runs on the engine loop.
func (a *AppManager) MacrosChanged(macros []macro.Config) {
	a.failMu.Lock()
	for _, m := range macros {
		if !m.Running {
			delete(a.failing, m.ID)
		}
	}
	a.failMu.Unlock()

	if a.view == nil || a.closing.Load() {
		return
	}
	fyne.Do(func() {
		a.view.Refresh(macros)
	})
}

// InjectionFailed raises one desktop notification per failing macro run.
func (a *AppManager) InjectionFailed(m macro.Config, err error) {
	a.failMu.Lock()
	first := !a.failing[m.ID]
	a.failing[m.ID] = true
	a.failMu.Unlock()

	if !first {
		return
	}
	a.play(audio.CueError)
	if !a.settings.Notify {
		return
	}
	go func() {
		if nerr := a.notify(i18n.T("Key injection failed"), fmt.Sprintf("%s: %v", m.DisplayName, err)); nerr != nil {
			log.Printf("Failed to send notification: %v", nerr)
		}
	}()
}

func (a *AppManager) play(c audio.Cue) {
	if a.cues != nil {
		a.cues.Play(c)
	}
}

// StartCapture begins a key capture whose result is delivered on the fyne
// main goroutine.
func (a *AppManager) StartCapture(onResult func(capture.Result)) *capture.Session {
	return capture.Start(a.listener, func(r capture.Result) {
		if r.Err != nil {
			log.Printf("Key capture failed: %v", r.Err)
		}
		onResult(r)
	}, capture.WithDispatcher(fyne.Do))
}

// DefaultIntervalSeconds is the interval pre-filled in the add dialog.
func (a *AppManager) DefaultIntervalSeconds() float64 {
	return a.settings.DefaultIntervalSeconds
}

// ShowNotice shows a non-blocking information dialog.
func (a *AppManager) ShowNotice(message string) {
	a.notice(message)
}

func (a *AppManager) showNoticeDialog(message string) {
	log.Printf("Notice: %s", message)
	if a.mainWindow == nil || a.closing.Load() {
		return
	}
	fyne.Do(func() {
		dialog.ShowInformation(i18n.T("Notice"), message, a.mainWindow)
	})
}

// ShowInfoDialog shows a dialog with the text for the current language from
// a JSON file mapping language codes to text.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	contentText, err := a.localizedText(contentFile)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	text := widget.NewLabel(contentText)
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

func (a *AppManager) localizedText(contentFile string) (string, error) {
	bytes, err := a.content.ReadFile(contentFile)
	if err != nil {
		return "", err
	}

	var texts map[string]string
	if err := json.Unmarshal(bytes, &texts); err != nil {
		return "", fmt.Errorf("parse %s: %w", contentFile, err)
	}
	if t, ok := texts[i18n.GetLang()]; ok {
		return t, nil
	}
	return texts["en"], nil
}

// Shutdown stops every macro and the command loops. It is called when the
// main window closes.
func (a *AppManager) Shutdown() {
	if !a.closing.CompareAndSwap(false, true) {
		return
	}
	a.engine.Shutdown()
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
