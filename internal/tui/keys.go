// SPDX-License-Identifier: MIT
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	ZoomInY  key.Binding
	ZoomOutY key.Binding
	Reset    key.Binding
	Mode     key.Binding
	Sparser  key.Binding
	Denser   key.Binding
	FFT      key.Binding
	Measure  key.Binding
	Peaks    key.Binding
	Cursors  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ZoomInY:  key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "zoom in Y")),
		ZoomOutY: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "zoom out Y")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "render mode")),
		Sparser:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "less density")),
		Denser:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more density")),
		FFT:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "spectrum")),
		Measure:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "measurements")),
		Peaks:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "peaks")),
		Cursors:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cursors")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Mode, k.FFT, k.Measure, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.ZoomIn, k.ZoomOut, k.ZoomInY, k.ZoomOutY, k.Reset},
		{k.Mode, k.Sparser, k.Denser},
		{k.FFT, k.Measure, k.Peaks, k.Cursors, k.Help, k.Quit},
	}
}
