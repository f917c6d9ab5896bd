// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package readlist reads URL lists from plain-text files.
//
// One URL per line. Blank lines are dropped. Lines starting with "//" are
// comments. A line carrying the "!ignore" marker is skipped unless the
// caller disables ignoring, in which case the marker is removed and the URL
// kept.
package readlist

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

const (
	commentPrefix = "//"
	ignoreMarker  = "!ignore"
	listExt       = ".txt"
)

// Options controls list parsing.
type Options struct {
	// NoIgnore keeps lines marked !ignore.
	NoIgnore bool

	// NoComments discards comment text instead of returning it.
	NoComments bool
}

// List is the parsed content of a URL list.
type List struct {
	URLs     []string
	Comments []string
	Ignored  int
	Invalid  []string
}

// ValidateFile checks that path exists and is a .txt file.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("the file %s does not exist", path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !strings.HasSuffix(path, listExt) {
		return fmt.Errorf("the file %s is not a %s", path, listExt)
	}
	return nil
}

// ValidateURL reports whether s is an absolute http or https URL with a host.
func ValidateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("the url %s is not valid: %w", s, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("the url %s is not valid", s)
	}
	return nil
}

// ReadFile validates and parses the list at path.
func ReadFile(path string, opts Options) (*List, error) {
	if err := ValidateFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses a URL list from r.
func Read(r io.Reader, opts Options) (*List, error) {
	list := &List{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, commentPrefix) {
			if !opts.NoComments {
				if c := strings.TrimSpace(strings.TrimPrefix(line, commentPrefix)); c != "" {
					list.Comments = append(list.Comments, c)
				}
			}
			continue
		}

		if strings.Contains(line, ignoreMarker) {
			if !opts.NoIgnore {
				list.Ignored++
				continue
			}
			line = strings.TrimSpace(strings.ReplaceAll(line, ignoreMarker, ""))
		}

		if err := ValidateURL(line); err != nil {
			list.Invalid = append(list.Invalid, line)
			continue
		}
		list.URLs = append(list.URLs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading list: %w", err)
	}
	return list, nil
}
