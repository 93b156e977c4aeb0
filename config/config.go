// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client settings from a config file, the
// environment, and command line flags, and turns them into the default
// request config and adapter of a pipex.Client.
//
// Settings are read, in increasing order of precedence, from built-in
// defaults, an optional YAML (or other viper supported) file,
// environment variables prefixed with PIPEX_ (a .env file in the
// working directory is loaded first), and flags registered with
// RegisterFlags.
package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/pipex/adapter/httpadapter"
	"github.com/gogama/pipex/adapter/restyadapter"
	"github.com/gogama/pipex/request"
	"github.com/gogama/pipex/transform"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PIPEX"

// Adapter names accepted in Settings.Adapter.
const (
	AdapterHTTP  = "http"
	AdapterResty = "resty"
)

// Settings holds client settings loaded by Load.
type Settings struct {
	BaseURL          string            `mapstructure:"base_url"`
	Timeout          time.Duration     `mapstructure:"timeout"`
	Headers          map[string]string `mapstructure:"headers"`
	Username         string            `mapstructure:"username"`
	Password         string            `mapstructure:"password"`
	MaxContentLength int64             `mapstructure:"max_content_length"`
	Decode           []string          `mapstructure:"decode"`
	Adapter          string            `mapstructure:"adapter"`
	Trace            bool              `mapstructure:"trace"`
	LogLevel         string            `mapstructure:"log_level"`
}

// RegisterFlags defines flags on fs for every scalar setting. Flag
// names use dashes where setting keys use underscores ("base-url").
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "base URL prepended to relative request URLs")
	fs.Duration("timeout", 0, "request timeout (0 for none)")
	fs.String("username", "", "basic auth username")
	fs.String("password", "", "basic auth password")
	fs.Int64("max-content-length", 0, "maximum response body size in bytes (0 for no limit)")
	fs.StringSlice("decode", nil, "response decoders to apply, in order (json, yaml, xml)")
	fs.String("adapter", "", "transport adapter (http or resty)")
	fs.Bool("trace", false, "send requests through an OpenTelemetry instrumented transport")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
}

// Load reads settings. If path is not empty, the file at path must
// exist and parse. If fs is not nil, any of its flags which were set
// on the command line override the other sources.
func Load(path string, fs *pflag.FlagSet) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("base_url", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("max_content_length", 0)
	v.SetDefault("decode", []string{"json"})
	v.SetDefault("adapter", AdapterHTTP)
	v.SetDefault("trace", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			if bindErr == nil {
				bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s (must not be negative)", s.Timeout)
	}
	if s.MaxContentLength < 0 {
		return fmt.Errorf("invalid max_content_length %d (must not be negative)", s.MaxContentLength)
	}
	switch s.Adapter {
	case AdapterHTTP, AdapterResty:
	default:
		return fmt.Errorf("invalid adapter %q (must be %q or %q)", s.Adapter, AdapterHTTP, AdapterResty)
	}
	for _, d := range s.Decode {
		if _, ok := decoders[strings.ToLower(d)]; !ok {
			return fmt.Errorf("invalid decoder %q (must be json, yaml, or xml)", d)
		}
	}
	return nil
}

var decoders = map[string]func() transform.Func{
	"json": transform.JSON,
	"yaml": transform.YAML,
	"xml":  transform.XML,
}

// Defaults returns the default request config described by s, built on
// request.Defaults.
func (s *Settings) Defaults() *request.Config {
	c := request.Defaults()
	c.BaseURL = s.BaseURL
	c.Timeout = s.Timeout
	c.MaxContentLength = s.MaxContentLength
	if s.Username != "" || s.Password != "" {
		c.Auth = &request.BasicAuth{Username: s.Username, Password: s.Password}
	}
	for name, value := range s.Headers {
		c.CommonHeader.Set(name, value)
	}
	if s.Decode != nil {
		c.TransformResponse = make([]transform.Func, 0, len(s.Decode))
		for _, d := range s.Decode {
			c.TransformResponse = append(c.TransformResponse, decoders[strings.ToLower(d)]())
		}
	}
	return c
}

// NewAdapter returns the transport adapter described by s. The logger
// may be nil.
func (s *Settings) NewAdapter(logger *zap.Logger) request.Adapter {
	if s.Adapter == AdapterResty {
		return restyadapter.New(resty.New())
	}

	var a *httpadapter.Adapter
	if s.Trace {
		a = httpadapter.NewTraced(nil)
	} else {
		a = httpadapter.New(&http.Client{})
	}
	a.Logger = logger
	return a
}
