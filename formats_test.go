/*
 * formats_test.go, part of goxtal.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestFormatForPath(Te *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"structure.cif", FormatCIF},
		{"STRUCTURE.CIF", FormatCIF},
		{"refined.res", FormatSHELX},
		{"model.ins", FormatSHELX},
		{"archive.cif.gz", FormatCIF},
		{"archive.res.gz", FormatSHELX},
	}
	for _, c := range cases {
		f, err := FormatForPath(c.path)
		if err != nil {
			Te.Errorf("%q: %v", c.path, err)
			continue
		}
		if f != c.want {
			Te.Errorf("%q recognized as %s", c.path, f)
		}
	}
	for _, bad := range []string{"coords.xyz", "noextension", "plain.gz"} {
		_, err := FormatForPath(bad)
		if err == nil {
			Te.Errorf("%q accepted", bad)
			continue
		}
		if !errors.Is(err, ErrUnsupportedFormat) {
			Te.Errorf("%q: error %v is not ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestSaveAndLoad(Te *testing.T) {
	orig, err := CrystalFromShelxString(testRes)
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, name := range []string{"out.res", "out.cif", "out.res.gz", "out.cif.gz"} {
		path := filepath.Join(dir, name)
		if err := orig.Save(path); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		back, err := LoadCrystal(path)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if back.SpaceGroup.Number != orig.SpaceGroup.Number {
			Te.Errorf("%s: space group %d", name, back.SpaceGroup.Number)
		}
		if back.Formula() != orig.Formula() {
			Te.Errorf("%s: formula %q", name, back.Formula())
		}
	}
}

func TestLoadGzipContent(Te *testing.T) {
	//.gz files really are gzip on disk
	orig, err := CrystalFromShelxString(testRes)
	if err != nil {
		Te.Fatal(err)
	}
	path := filepath.Join(Te.TempDir(), "check.res.gz")
	if err := orig.Save(path); err != nil {
		Te.Fatal(err)
	}
	fh, err := os.Open(path)
	if err != nil {
		Te.Fatal(err)
	}
	defer fh.Close()
	if _, err := gzip.NewReader(fh); err != nil {
		Te.Errorf("saved .gz file is not gzip: %v", err)
	}
}

func TestLoadTitleFallback(Te *testing.T) {
	//a structure without a title takes it from the file name
	c := testCrystal(Te, 1, 10.0, []string{"C"}, []float64{0.1, 0.1, 0.1})
	c.Titl = ""
	path := filepath.Join(Te.TempDir(), "benzene.cif")
	content, err := FormatCIF.Encode(c)
	if err != nil {
		Te.Fatal(err)
	}
	//strip the block name so the fallback has to kick in
	body := content[strings.IndexByte(content, '\n')+1:]
	if err := os.WriteFile(path, []byte("data_\n"+body), 0644); err != nil {
		Te.Fatal(err)
	}
	back, err := LoadCrystal(path)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Titl != "benzene" {
		Te.Errorf("fallback title %q", back.Titl)
	}
}
