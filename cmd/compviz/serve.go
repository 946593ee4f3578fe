package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/compviz-xyz/go-compviz/runlog"
	"github.com/compviz-xyz/go-compviz/service"
)

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	runlogPath := fs.String("runlog", "", "Run log file (.jsonl appends JSON lines, .db uses SQLite)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: compviz serve [options]

Start the compilation service. Endpoints:
  POST /analyze  - lexical analysis
  POST /compile  - full pipeline
  GET  /events   - websocket stage events

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  compviz serve --addr :8080
  compviz serve --addr :9000 --runlog runs.jsonl
  compviz serve --runlog runs.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []service.Option
	if *runlogPath != "" {
		rec, err := openRunLog(*runlogPath)
		if err != nil {
			return err
		}
		if c, ok := rec.(io.Closer); ok {
			defer c.Close()
		}
		opts = append(opts, service.WithRunLog(rec))
		fmt.Printf("Recording runs to %s\n", *runlogPath)
	}

	srv := service.NewServer(opts...)
	fmt.Printf("Listening on %s\n", *addr)
	return http.ListenAndServe(*addr, srv.Handler())
}

func openRunLog(path string) (runlog.Recorder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return runlog.OpenSQLite(path)
	default:
		return runlog.OpenJSONL(path)
	}
}
