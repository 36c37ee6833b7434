package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pdfviewer/internal/app"
	"pdfviewer/internal/locale"
	"pdfviewer/internal/raster"
	"pdfviewer/pkg/pdfdoc"
)

func main() {
	verbose := flag.Bool("v", false, "log debug output to stdout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] [en|ja|zh]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	handler := slog.DiscardHandler
	if *verbose {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	lang := locale.Match(flag.Arg(0))
	slog.Debug("starting", "lang", lang)

	codec := pdfdoc.NewCodec(raster.New(raster.DefaultDPI))
	application := app.New(lang, codec)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfviewer failed: %v\n", err)
		os.Exit(1)
	}
}
