package model

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ioutils "github.com/kipyin/lego-songbook/internal/io"
)

// PageExtension is the file extension of page stubs.
const PageExtension = ".md"

// pageFrontMatter is the YAML header of a page stub.
type pageFrontMatter struct {
	Layout            string   `yaml:"layout"`
	Title             string   `yaml:"title"`
	AlternativeTitles []string `yaml:"alternative_titles,omitempty"`
	OriginalKey       string   `yaml:"original_key,omitempty"`
	Lyricist          string   `yaml:"lyricist,omitempty"`
	Composer          string   `yaml:"composer,omitempty"`
	Pinyin            string   `yaml:"pinyin"`
}

// PagePath returns the page stub path of this song under pageDir.
//
// The file is named after the sanitized title with a .md extension.
// Leading dots are dropped so a page is never a hidden file. A title with
// nothing left after sanitizing falls back to its pinyin key, then to
// untitledPage. Titles differing only in invalid characters share a page.
func (s *Song) PagePath(pageDir string) string {
	name := pageName(s.Title)
	if name == "" {
		name = pageName(strings.Join(s.PinyinTitle(), " "))
	}
	if name == "" {
		name = untitledPage
	}
	return filepath.Join(pageDir, name+PageExtension)
}

// untitledPage names the page of a title without usable characters.
const untitledPage = "untitled"

func pageName(title string) string {
	return strings.TrimLeft(ioutils.SanitizeFileName(title), ". ")
}

// PageExists reports whether the page stub of this song is present.
//
// Fails with ErrInvalidArgument if pageDir is not a directory.
func (s *Song) PageExists(pageDir string) (bool, error) {
	if !ioutils.IsDir(pageDir) {
		return false, fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, pageDir)
	}

	_, err := os.Stat(s.PagePath(pageDir))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// CreatePage writes the page stub of this song.
//
// If the page exists, CreatePage fails with ErrAlreadyExists, or returns
// false without error when quiet is set. Returns true when a stub was
// written.
func (s *Song) CreatePage(pageDir string, quiet bool) (bool, error) {
	exists, err := s.PageExists(pageDir)
	if err != nil {
		return false, err
	}
	path := s.PagePath(pageDir)
	if exists {
		if quiet {
			return false, nil
		}
		return false, fmt.Errorf("%w: page %s", ErrAlreadyExists, path)
	}

	content, err := s.PageStub()
	if err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			if quiet {
				return false, nil
			}
			return false, fmt.Errorf("%w: page %s", ErrAlreadyExists, path)
		}
		return false, err
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return false, err
	}

	return true, nil
}

// PageStub returns the content of a new page: YAML front matter and an
// empty body.
func (s *Song) PageStub() ([]byte, error) {
	front := pageFrontMatter{
		Layout:            "song",
		Title:             s.Title,
		AlternativeTitles: s.AlternativeTitles,
		OriginalKey:       s.OriginalKey,
		Lyricist:          s.Lyricist,
		Composer:          s.Composer,
		Pinyin:            strings.Join(s.PinyinTitle(), " "),
	}

	header, err := yaml.Marshal(front)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n")

	return buf.Bytes(), nil
}
