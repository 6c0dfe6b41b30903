// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "quarrel> ", cfg.Prompt)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quarrelsh.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"prompt: \"> \"\nmacro_file: /tmp/macros.yaml\nverbose: true\n"), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "> ", cfg.Prompt)
		assert.Equal(t, "/tmp/macros.yaml", cfg.MacroFile)
		assert.True(t, cfg.Verbose)
	})

	t.Run("empty prompt falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quarrelsh.yaml")
		require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "quarrel> ", cfg.Prompt)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quarrelsh.yaml")
		require.NoError(t, os.WriteFile(path, []byte("prompt: [unclosed\n"), 0o644))

		_, err := loadConfig(path)
		assert.Error(t, err)
	})
}

func testShell() *shell {
	return newShell(nil, defaultConfig(), zerolog.Nop())
}

func TestLoadMacros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"home: tp 0 64 0\nshout: broadcast --bold\n"), 0o644))

	s := testShell()
	require.NoError(t, s.loadMacros(path))

	assert.Equal(t, "tp 0 64 0", s.expandMacro("home"))
	assert.Equal(t, "broadcast --bold hello", s.expandMacro("shout hello"))
	assert.Equal(t, "tp 1 2 3", s.expandMacro("tp 1 2 3"), "non-macros pass through")
}

func TestLoadMacros_Errors(t *testing.T) {
	s := testShell()
	assert.Error(t, s.loadMacros(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "macros.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a\n- map\n"), 0o644))
	assert.Error(t, s.loadMacros(path))
}

func TestWatchMacros_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macros.yaml")
	require.NoError(t, os.WriteFile(path, []byte("home: tp 0 64 0\n"), 0o644))

	s := testShell()
	require.NoError(t, s.watchMacros(path))
	assert.Equal(t, "tp 0 64 0", s.expandMacro("home"))

	require.NoError(t, os.WriteFile(path, []byte("home: tp 1 1 1\n"), 0o644))
	require.Eventually(t, func() bool {
		return s.expandMacro("home") == "tp 1 1 1"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchMacros_MissingFileIsTolerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macros.yaml")

	s := testShell()
	require.NoError(t, s.watchMacros(path), "a macro file that does not exist yet is not an error")

	require.NoError(t, os.WriteFile(path, []byte("home: tp 0 64 0\n"), 0o644))
	require.Eventually(t, func() bool {
		return s.expandMacro("home") == "tp 0 64 0"
	}, 5*time.Second, 20*time.Millisecond)
}
