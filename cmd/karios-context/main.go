// One-shot tool: build a reference-context document from a references JSON
// array and print the markdown.
//
// Usage:
//
//	karios-context -refs refs.json [-out doc.md] [-config config/karios.yaml]
//	cat refs.json | karios-context -refs - -server http://127.0.0.1:4330
//
// The exit code is 0 even when some references failed to load; failure stubs
// are part of a valid document. Nonzero exits mean unreadable input, config
// or output.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"karios/internal/backend"
	"karios/internal/config"
	"karios/internal/refctx"
	"karios/internal/util"
	"karios/pkg/karios"
)

func main() {
	defaultCfg := "config/karios.yaml"
	if p := os.Getenv("KARIOS_CONFIG"); p != "" {
		defaultCfg = p
	}
	cfgPath := flag.String("config", defaultCfg, "path to the YAML config file")
	refsPath := flag.String("refs", "", "references JSON file (\"-\" for stdin)")
	outPath := flag.String("out", "", "output file (default stdout)")
	serverURL := flag.String("server", "", "build via a running karios-server instead of in-process")
	timeout := flag.Duration("timeout", 60*time.Second, "overall build timeout")
	flag.Parse()

	if *refsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: karios-context -refs <file|-> [-out file] [-server url]")
		os.Exit(2)
	}

	raw, err := readRefs(*refsPath)
	if err != nil {
		log.Fatalf("reading references: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var document string
	var sections, failed int

	if *serverURL != "" {
		resp, err := karios.NewClient(*serverURL).BuildContext(ctx, raw)
		if err != nil {
			log.Fatalf("building context via %s: %v", *serverURL, err)
		}
		document, sections, failed = resp.Document, resp.Sections, resp.Failed
	} else {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		// The document goes to stdout; keep logs on stderr.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: util.ParseLevel(cfg.Logging.Level),
		}))

		refs, err := refctx.ParseReferences(raw)
		if err != nil {
			log.Fatalf("parsing references: %v", err)
		}
		client := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, logger)
		res := refctx.New(client, logger).Build(ctx, refs)
		document, sections, failed = res.Document, res.Sections, res.Failed
	}

	if err := writeOut(*outPath, document); err != nil {
		log.Fatalf("writing document: %v", err)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "built %d sections, %d failed\n", sections, failed)
	}
}

func readRefs(path string) (json.RawMessage, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func writeOut(path, document string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, document)
		return err
	}
	return os.WriteFile(path, []byte(document), 0o644)
}
