// Package ui provides the desktop color picker using Fyne.
package ui

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/provider"
)

// PickerUI lists the colors of one document and rewrites them from
// Fyne's color picker dialog.
type PickerUI struct {
	app    fyne.App
	window fyne.Window

	provider *provider.Provider
	load     func() (string, error)
	save     func(string) error

	// Document state
	src  string
	refs []provider.Ref

	list   *widget.List
	status *widget.Label

	mu sync.Mutex
}

// NewPickerUI creates a picker window for the document returned by load.
// Every change is written back through save.
func NewPickerUI(a fyne.App, title string, p *provider.Provider, load func() (string, error), save func(string) error) (*PickerUI, error) {
	u := &PickerUI{
		app:      a,
		window:   a.NewWindow(title),
		provider: p,
		load:     load,
		save:     save,
	}
	u.window.Resize(fyne.NewSize(480, 640))

	if err := u.Reload(); err != nil {
		return nil, err
	}
	u.setupUI()
	return u, nil
}

// setupUI creates the list and toolbar.
func (u *PickerUI) setupUI() {
	u.status = widget.NewLabel("")
	u.updateStatus()

	u.list = widget.NewList(
		func() int {
			u.mu.Lock()
			defer u.mu.Unlock()
			return len(u.refs)
		},
		func() fyne.CanvasObject {
			swatch := canvas.NewRectangle(color.Transparent)
			swatch.SetMinSize(fyne.NewSize(32, 20))
			swatch.StrokeColor = theme.Color(theme.ColorNameForeground)
			swatch.StrokeWidth = 1
			edit := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), nil)
			return container.NewBorder(nil, nil, swatch, edit, widget.NewLabel(""))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			u.mu.Lock()
			if id >= len(u.refs) {
				u.mu.Unlock()
				return
			}
			ref := u.refs[id]
			u.mu.Unlock()

			// Border layout puts the center object first.
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			swatch := row.Objects[1].(*canvas.Rectangle)
			edit := row.Objects[2].(*widget.Button)

			swatch.FillColor = ref.Color.NRGBA()
			swatch.Refresh()
			label.SetText(fmt.Sprintf("%d  %s", id+1, ref.Text))
			edit.OnTapped = func() {
				u.showPicker(id)
			}
		},
	)

	reload := widget.NewButtonWithIcon("Reload", theme.ViewRefreshIcon(), func() {
		if err := u.Reload(); err != nil {
			dialog.ShowError(err, u.window)
		}
		u.refresh()
	})

	u.window.SetContent(container.NewBorder(
		container.NewHBox(reload, u.status),
		nil, nil, nil,
		u.list,
	))
}

// showPicker opens the color dialog for the color at index.
func (u *PickerUI) showPicker(index int) {
	u.mu.Lock()
	if index >= len(u.refs) {
		u.mu.Unlock()
		return
	}
	ref := u.refs[index]
	u.mu.Unlock()

	picker := dialog.NewColorPicker("Pick a color", ref.Text, func(c color.Color) {
		if err := u.SetColor(index, css.FromColor(c)); err != nil {
			dialog.ShowError(err, u.window)
		}
		u.refresh()
	}, u.window)
	picker.Advanced = true
	picker.SetColor(ref.Color.NRGBA())
	picker.Show()
}

// Reload reads the document again and re-detects its colors.
func (u *PickerUI) Reload() error {
	src, err := u.load()
	if err != nil {
		return err
	}
	refs, err := u.provider.Colors(src)
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.src = src
	u.refs = refs
	u.mu.Unlock()
	return nil
}

// Refs returns the colors currently listed.
func (u *PickerUI) Refs() []provider.Ref {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]provider.Ref(nil), u.refs...)
}

// SetColor rewrites the color at index, saves the document and reloads it.
func (u *PickerUI) SetColor(index int, c css.Color) error {
	u.mu.Lock()
	if index < 0 || index >= len(u.refs) {
		u.mu.Unlock()
		return fmt.Errorf("no color at index %d", index+1)
	}
	updated, err := u.provider.SetColor(u.src, u.refs[index], c)
	u.mu.Unlock()
	if err != nil {
		return err
	}

	if err := u.save(updated); err != nil {
		return err
	}
	return u.Reload()
}

func (u *PickerUI) updateStatus() {
	u.mu.Lock()
	n := len(u.refs)
	u.mu.Unlock()
	u.status.SetText(fmt.Sprintf("%d colors", n))
}

func (u *PickerUI) refresh() {
	u.updateStatus()
	u.list.Refresh()
}

// Window returns the picker window.
func (u *PickerUI) Window() fyne.Window {
	return u.window
}

// Run shows the window and starts the Fyne event loop.
func (u *PickerUI) Run() {
	u.window.ShowAndRun()
}
