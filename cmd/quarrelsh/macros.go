// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// loadMacros replaces the macro table from a YAML file mapping macro names
// to expansion lines.
func (s *shell) loadMacros(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	macros := map[string]string{}
	if err := yaml.Unmarshal(data, &macros); err != nil {
		return err
	}
	s.macroMu.Lock()
	s.macros = macros
	s.macroMu.Unlock()
	s.log.Debug().Int("count", len(macros)).Str("file", path).Msg("macros loaded")
	return nil
}

// watchMacros loads the macro file and reloads it whenever it changes.
// Editors often replace rather than rewrite, so the parent directory is
// watched and events are filtered by name.
func (s *shell) watchMacros(path string) error {
	if err := s.loadMacros(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer func() {
			_ = watcher.Close()
		}()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.loadMacros(path); err != nil {
					s.log.Warn().Err(err).Msg("macro reload failed")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("macro watcher error")
			}
		}
	}()
	return nil
}
