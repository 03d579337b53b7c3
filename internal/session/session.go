// Package session wires preferences, logging and presets into assemblers for the binaries.
package session

import (
	"masonry/internal/assembler"
	"masonry/internal/blueprint"
	"masonry/internal/config"
	"masonry/internal/emit"
	"masonry/internal/env"
	"masonry/internal/logger"
	"masonry/internal/material"
)

// EnvFile is read for MASONRY_* overrides next to the process environment.
const EnvFile = ".env"

type Session struct {
	Prefs   config.Prefs
	Log     *logger.Logger
	Presets *material.Registry
}

// Open loads preferences from configPath, applies overrides from envFile and the process
// environment, and opens the log file the preferences name (logger.LogFilePath by default).
func Open(configPath, envFile string) (*Session, error) {
	p, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	vars, err := env.Read(envFile)
	if err != nil {
		return nil, err
	}
	if p, err = p.Overlay(env.Prefixed(config.EnvPrefix, vars)); err != nil {
		return nil, err
	}
	presets, err := p.Registry()
	if err != nil {
		return nil, err
	}
	path := p.LogFile
	if path == "" {
		path = logger.LogFilePath
	}
	return &Session{Prefs: p, Log: logger.New(path), Presets: presets}, nil
}

// Prepare returns an assembler configured for doc and the request to run with it. A non-empty
// quality overrides both the preferences and the document.
func (s *Session) Prepare(doc *blueprint.Document, quality string) (*assembler.Assembler, assembler.Request, error) {
	opts, err := s.Prefs.EmitOptions()
	if err != nil {
		return nil, assembler.Request{}, err
	}
	req, err := doc.Request(opts.Quality, s.Prefs.Plan())
	if err != nil {
		return nil, assembler.Request{}, err
	}
	if quality != "" {
		if req.Quality, err = emit.ParseQuality(quality); err != nil {
			return nil, assembler.Request{}, err
		}
	}
	a := assembler.New(assembler.Options{
		Emit:        doc.Options(opts),
		Workers:     s.Prefs.Workers,
		FullCorners: s.Prefs.FullCorners,
		Presets:     s.Presets,
		Logger:      s.Log,
	})
	return a, req, nil
}
