package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const utf8BOM = "\ufeff"

// ImportCSV reads a catalog CSV written in format.
//
// The header must equal format.Header() exactly, in order, or ImportCSV
// fails with ErrInvalidArgument. Only the title and original key of each
// row are read, whatever other columns hold. The catalog is named after the
// file.
func ImportCSV(path string, format Format) (*SongCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if want := format.Header(); !slices.Equal(header, want) {
		return nil, fmt.Errorf("%w: invalid csv header %v, want %v", ErrInvalidArgument, header, want)
	}

	catalog := NewSongCatalog(filepath.Base(path))
	titleField, keyField := format.titleField(), format.keyField()

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		title := valueAt(header, row, titleField)
		if title == "" {
			return nil, fmt.Errorf("%w: %s line %d has no %s", ErrInvalidArgument, path, line, titleField)
		}
		catalog.Songs = append(catalog.Songs, NewSong(title, valueAt(header, row, keyField)))
	}

	return catalog, nil
}

// ExportCSV writes the catalog in format: the header, then one row per song.
//
// Legacy rows carry only name and key. A failed write leaves a partial file.
func (c *SongCatalog) ExportCSV(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(format.Header()); err != nil {
		return err
	}

	for _, song := range c.Songs {
		if err := w.Write(csvRow(song, format)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func csvRow(song *Song, format Format) []string {
	if format == FormatLegacy {
		return []string{song.Title, song.OriginalKey, "", ""}
	}
	return []string{
		song.Title,
		song.OriginalKey,
		song.AlternativeTitleString(),
		song.Lyricist,
		song.Composer,
	}
}

func readHeader(r *csv.Reader) ([]string, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing csv header", ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header, nil
}

func valueAt(header, row []string, name string) string {
	for i, h := range header {
		if h == name && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}
