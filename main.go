package main

import (
	"embed"
	"log"

	"fyne.io/fyne/v2/app"

	"KeyPulse/config"
	"KeyPulse/ui"
)

//go:embed assets/*
var content embed.FS

func main() {
	settings, err := config.Load(content)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	a := NewAppManager(content, settings)

	w, view := ui.CreateMainWindow(a, fyneApp, settings.WindowWidth, settings.WindowHeight)
	a.AttachWindow(w, view)

	w.SetOnClosed(a.Shutdown)

	w.ShowAndRun()
}
