// seehuhn.de/go/anchor - a library for anchoring comments in documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Doc-annotate adds review comments to a document.
//
// The comments are described by a JSON spec file.  Each spec gives a target
// (a text pattern to search for, or a page position) and the comment text to
// attach.  Targets which do not match anything in the document are silently
// skipped.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/anchor"
	"seehuhn.de/go/anchor/docx"
	"seehuhn.de/go/anchor/pdfdoc"
)

func main() {
	outName := flag.String("o", "", "output `file` (default <input>-annotated)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "doc-annotate - add review comments to a document\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  doc-annotate [options] <file.docx|file.pdf> <specs.json>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inName := flag.Arg(0)
	specName := flag.Arg(1)

	err := run(inName, specName, *outName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doc-annotate: %v\n", err)
		os.Exit(1)
	}
}

func run(inName, specName, outName string) error {
	specFile, err := os.Open(specName)
	if err != nil {
		return err
	}
	specs, err := anchor.ReadSpecs(specFile)
	specFile.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", specName, err)
	}

	ext := strings.ToLower(filepath.Ext(inName))
	if outName == "" {
		outName = strings.TrimSuffix(inName, filepath.Ext(inName)) + "-annotated" + ext
	}

	var numAnchors int
	switch ext {
	case ".docx":
		numAnchors, err = docx.Annotate(inName, outName, specs)
	case ".pdf":
		numAnchors, err = pdfdoc.Annotate(inName, outName, specs)
	default:
		return fmt.Errorf("%s: unsupported file type %q", inName, ext)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d comment(s) added\n", outName, numAnchors)
	return nil
}
