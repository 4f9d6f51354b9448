package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/akai-engine/akai/akai"
	"github.com/akai-engine/akai/akai/sdlwindow"
	"github.com/xlab/catcher"
	"github.com/xlab/closer"
)

var (
	opts     = akai.DefaultOptions()
	flagInfo = flag.Bool("info", false, "print device and swapchain info, then exit")
)

func init() {
	runtime.LockOSThread()
	log.SetFlags(log.Lshortfile)
	opts.RegisterFlags(flag.CommandLine)
}

func main() {
	defer closer.Close()
	defer catcher.Catch(
		catcher.RecvLog(true),
		catcher.RecvDie(1),
	)
	flag.Parse()
	orPanic(opts.Validate())

	window, err := sdlwindow.New(opts.Title, opts.Width, opts.Height)
	orPanic(err)
	app, err := akai.NewApplication(opts, window)
	orPanic(err, window.Destroy)

	if *flagInfo {
		orPanic(akai.PrintInfo(os.Stdout, app), app.Destroy)
		app.Destroy()
		return
	}
	app.Run()
}

func orPanic(err error, finalizers ...func()) {
	if err != nil {
		for _, fn := range finalizers {
			fn()
		}
		panic(err)
	}
}
