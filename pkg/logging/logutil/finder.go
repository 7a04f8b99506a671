// Package logutil locates the log files written by the logging file sink.
package logutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/util/pathutil"
)

var dateSuffix = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

// Component returns the component a log file belongs to:
// server-2024-05-01.log -> server.
func Component(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return dateSuffix.ReplaceAllString(name, "")
}

// FindLogFiles maps each component to the log file to read. With a
// configured file sink path that file is the only one; otherwise the
// latest .log file per component in logsDir is picked.
func FindLogFiles(logCfg logging.Config, logsDir string) (map[string]string, error) {
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		expanded, err := pathutil.Expand(logCfg.File.Path)
		if err != nil {
			return nil, err
		}
		return map[string]string{Component(expanded): expanded}, nil
	}

	entries, err := os.ReadDir(logsDir)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read log directory %s: %w", logsDir, err)
	}

	groups := make(map[string][]os.DirEntry)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		c := Component(entry.Name())
		groups[c] = append(groups[c], entry)
	}

	files := make(map[string]string, len(groups))
	for c, group := range groups {
		if path := latest(logsDir, group); path != "" {
			files[c] = path
		}
	}
	return files, nil
}

// FindLatestLogFile finds the most recently modified .log file in a
// directory, preferring files with content over empty ones.
func FindLatestLogFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("could not read log directory %s: %w", dir, err)
	}
	var logs []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			logs = append(logs, entry)
		}
	}
	path := latest(dir, logs)
	if path == "" {
		return "", fmt.Errorf("no log files found in %s", dir)
	}
	return path, nil
}

func latest(dir string, entries []os.DirEntry) string {
	var latestFile, latestNonEmpty os.FileInfo
	var latestPath, latestNonEmptyPath string

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestFile == nil || info.ModTime().After(latestFile.ModTime()) {
			latestFile = info
			latestPath = filepath.Join(dir, entry.Name())
		}
		if info.Size() > 0 && (latestNonEmpty == nil || info.ModTime().After(latestNonEmpty.ModTime())) {
			latestNonEmpty = info
			latestNonEmptyPath = filepath.Join(dir, entry.Name())
		}
	}

	if latestNonEmpty != nil {
		return latestNonEmptyPath
	}
	return latestPath
}
