/*
 * formats.go, part of goxtal.
 *
 * Copyright 2024 The goxtal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package xtal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//ErrUnsupportedFormat is returned when a file name matches no known
//structure format. Test with errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported structure file format")

//Format identifies a structure file format.
type Format int

const (
	FormatCIF Format = iota
	FormatSHELX
)

type formatCodec struct {
	name       string
	extensions []string
	decode     func(string) (*Crystal, error)
	encode     func(*Crystal) string
}

//The codec table is fixed at startup; LoadCrystal and Crystal.Save
//dispatch through it by extension.
var formatCodecs = map[Format]formatCodec{
	FormatCIF: {
		name:       "CIF",
		extensions: []string{".cif"},
		decode:     CrystalFromCifString,
		encode:     (*Crystal).ToCifString,
	},
	FormatSHELX: {
		name:       "SHELX",
		extensions: []string{".res", ".ins"},
		decode:     CrystalFromShelxString,
		encode:     (*Crystal).ToShelxString,
	},
}

func (f Format) String() string {
	if c, ok := formatCodecs[f]; ok {
		return c.name
	}
	return "unknown"
}

//FormatForPath determines the structure format of a file name from its
//extension, looking through a trailing .gz.
func FormatForPath(path string) (Format, error) {
	name := strings.ToLower(path)
	name = strings.TrimSuffix(name, ".gz")
	ext := filepath.Ext(name)
	for f, c := range formatCodecs {
		for _, e := range c.extensions {
			if e == ext {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

//Decode parses structure file content in this format.
func (f Format) Decode(content string) (*Crystal, error) {
	c, ok := formatCodecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(f))
	}
	return c.decode(content)
}

//Encode renders a crystal in this format.
func (f Format) Encode(crystal *Crystal) (string, error) {
	c, ok := formatCodecs[f]
	if !ok {
		return "", fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(f))
	}
	return c.encode(crystal), nil
}

//LoadCrystal reads a crystal structure from a file, picking the format
//from the extension (.cif, .res, .ins, optionally gzip-compressed with
//an additional .gz).
func LoadCrystal(filename string) (*Crystal, error) {
	format, err := FormatForPath(filename)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadCrystal")
	}
	defer fh.Close()
	var r io.Reader = fh
	if strings.HasSuffix(strings.ToLower(filename), ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return nil, errDecorate(err, "LoadCrystal")
		}
		defer gz.Close()
		r = gz
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errDecorate(err, "LoadCrystal")
	}
	crystal, err := format.Decode(string(content))
	if err != nil {
		return nil, errDecorate(err, "LoadCrystal")
	}
	if crystal.Titl == "" {
		base := filepath.Base(filename)
		base = strings.TrimSuffix(base, ".gz")
		crystal.Titl = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return crystal, nil
}

//Save writes the crystal structure to a file, picking the format from
//the extension (.cif, .res, .ins, optionally gzip-compressed with an
//additional .gz).
func (C *Crystal) Save(filename string) error {
	format, err := FormatForPath(filename)
	if err != nil {
		return err
	}
	content, err := format.Encode(C)
	if err != nil {
		return errDecorate(err, "Save")
	}
	fh, err := os.Create(filename)
	if err != nil {
		return errDecorate(err, "Save")
	}
	defer fh.Close()
	var w io.Writer = fh
	var gz *gzip.Writer
	if strings.HasSuffix(strings.ToLower(filename), ".gz") {
		gz = gzip.NewWriter(fh)
		w = gz
	}
	if _, err := io.WriteString(w, content); err != nil {
		return errDecorate(err, "Save")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errDecorate(err, "Save")
		}
	}
	return nil
}
