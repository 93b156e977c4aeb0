// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command pipex sends one HTTP request through a pipex.Client and
// prints the response data.
//
// Usage:
//
//	pipex [flags] URL
//
// Client defaults are read from the file named by --config, from
// PIPEX_ environment variables, and from flags. Run pipex --help for
// the full flag list.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/antchfx/xmlquery"
	"github.com/gogama/pipex"
	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/config"
	"github.com/gogama/pipex/interceptors"
	"github.com/gogama/pipex/internal/logger"
	"github.com/gogama/pipex/request"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("pipex", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file")
	method := fs.StringP("method", "X", "get", "HTTP method")
	data := fs.StringP("data", "d", "", "request body, sent as is")
	headers := fs.StringArrayP("header", "H", nil, `request header ("Name: value"), may be repeated`)
	params := fs.StringArrayP("param", "p", nil, `query parameter ("name=value"), may be repeated`)
	verbose := fs.BoolP("verbose", "v", false, "print the response status and headers to stderr")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: pipex [flags] URL")
		return 2
	}

	settings, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "pipex: %v\n", err)
		return 1
	}
	log := logger.New(settings.LogLevel, stderr)
	defer func() {
		_ = log.Sync()
	}()

	client := &pipex.Client{
		Defaults: settings.Defaults(),
		Adapter:  settings.NewAdapter(log),
	}
	client.Interceptors.Request.Use(interceptors.RequestID(""), nil)
	client.Interceptors.Request.Use(interceptors.LogRequest(log), nil)
	client.Interceptors.Response.Use(interceptors.LogResponse(log))

	cfg, err := requestConfig(*method, *headers, *params)
	if err != nil {
		fmt.Fprintf(stderr, "pipex: %v\n", err)
		return 2
	}
	if fs.Changed("data") {
		cfg.Data = *data
	}
	token, release := cancel.FromContext(ctx)
	defer release()
	cfg.CancelToken = token

	resp, err := client.Request(ctx, fs.Arg(0), cfg)
	rejected := false
	if err != nil {
		var te *request.TransportError
		if !errors.As(err, &te) || te.Response == nil {
			fmt.Fprintf(stderr, "pipex: %v\n", err)
			return 1
		}
		resp = te.Response
		rejected = true
	}

	if *verbose {
		fmt.Fprintf(stderr, "%d %s\n", resp.Status, resp.StatusText)
		_ = resp.Header.Write(stderr)
		fmt.Fprintln(stderr)
	}
	if err = printData(stdout, resp); err != nil {
		fmt.Fprintf(stderr, "pipex: %v\n", err)
		return 1
	}
	if rejected {
		return 1
	}
	return 0
}

func requestConfig(method string, headers, params []string) (*request.Config, error) {
	cfg := &request.Config{Method: method}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", h)
		}
		if cfg.Header == nil {
			cfg.Header = make(http.Header)
		}
		cfg.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	for _, p := range params {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid param %q (want \"name=value\")", p)
		}
		if cfg.Params == nil {
			cfg.Params = make(url.Values)
		}
		cfg.Params.Add(name, value)
	}
	return cfg, nil
}

func printData(w io.Writer, resp *request.Response) error {
	if b, ok := resp.Bytes(); ok {
		_, err := w.Write(b)
		return err
	}

	switch x := resp.Data.(type) {
	case nil:
		return nil
	case *xmlquery.Node:
		_, err := io.WriteString(w, x.OutputXML(true)+"\n")
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(x)
	}
}
