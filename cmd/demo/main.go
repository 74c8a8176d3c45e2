// Command demo exercises the core runtime directly -- buffer, renderer,
// input decoder, tick loop, and one window -- with no widget layer on
// top.
package main

import (
	"context"
	"fmt"
	"os"

	celina "github.com/fox0430/celina-core"
	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
	"github.com/fox0430/celina-core/window"
)

func main() {
	cfg := celina.DefaultConfig()
	cfg.Title = "celina-core demo"
	cfg.MouseCapture = true
	cfg.BracketedPaste = true
	cfg.WindowMode = true

	app := celina.NewApp(cfg)

	win := window.New(geometry.Rect{X: 2, Y: 1, Width: 40, Height: 10}, "demo", ptr(window.DefaultBorder()))
	ca := win.ContentArea()
	win.Content.SetString(ca.X+1, ca.Y+1, "press q or ctrl-c to quit", color.DefaultStyle(), "")
	app.AddWindow(win)

	frame := 0
	app.OnRender(func(back *buffer.Buffer) {
		back.Fill(back.Area(), buffer.Cell{Symbol: " ", Style: color.DefaultStyle(), Width: 1})
		back.SetString(0, 0, fmt.Sprintf("frame %d", frame), color.DefaultStyle(), "")
		frame++
	})

	app.OnEvent(func(ev input.Event) bool {
		if ev.Kind == input.KindKey && ev.Key == input.KeyChar && ev.Char == 'q' {
			return false
		}
		return true
	})

	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func ptr[T any](v T) *T { return &v }
