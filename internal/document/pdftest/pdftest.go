// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small hand-built PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Object is one indirect object. Objects are numbered from 1 in the order
// they are passed to Write. A non-nil Stream makes the object a stream and
// adds /Length to Dict.
type Object struct {
	Dict   string
	Stream []byte
}

// Write lays out objects with a classic xref table, writes the file under
// t.TempDir and returns its path. Object 1 must be the catalog.
func Write(t testing.TB, name string, objects []Object) string {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n", i+1)
		if obj.Stream == nil {
			fmt.Fprintf(&b, "%s\nendobj\n", obj.Dict)
			continue
		}
		dict := obj.Dict[:len(obj.Dict)-2]
		fmt.Fprintf(&b, "%s/Length %d >>\nstream\n", dict, len(obj.Stream))
		b.Write(obj.Stream)
		b.WriteString("\nendstream\nendobj\n")
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
	return path
}

// JPEG encodes a w by h image filled with c. Gray colors produce a
// single-component JPEG.
func JPEG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()

	var img image.Image
	if g, ok := c.(color.Gray); ok {
		m := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				m.SetGray(x, y, g)
			}
		}
		img = m
	} else {
		m := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y, c)
			}
		}
		img = m
	}

	var b bytes.Buffer
	require.NoError(t, jpeg.Encode(&b, img, nil))
	return b.Bytes()
}

// TextPDF writes a two-page PDF: page 1 draws "Hello PDF" in Helvetica,
// page 2 is blank. Neither page has images.
func TextPDF(t testing.TB) string {
	t.Helper()

	return Write(t, "hello.pdf", []Object{
		{Dict: "<< /Type /Catalog /Pages 2 0 R >>"},
		{Dict: "<< /Type /Pages /Kids [3 0 R 6 0 R] /Count 2 >>"},
		{Dict: "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>"},
		{Dict: "<< >>", Stream: []byte("BT /F1 24 Tf 72 720 Td (Hello PDF) Tj ET")},
		{Dict: "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"},
		{Dict: "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 7 0 R >>"},
		{Dict: "<< >>", Stream: []byte{}},
	})
}

// ImagePDF is the content of a one-page PDF built by Images.
type ImagePDF struct {
	Path string

	// JPEGs holds the embedded DCT streams in object number order. The
	// soft mask is not included.
	JPEGs [][]byte
}

// Images writes a one-page PDF drawing "Hello" and two JPEG image XObjects,
// /Im0 (object 6, 8x8 red) and /Im1 (object 7, 4x4 blue). /Im1 carries a
// grayscale /SMask (object 8) that the page does not reference directly.
func Images(t testing.TB) ImagePDF {
	t.Helper()

	red := JPEG(t, 8, 8, color.RGBA{R: 200, A: 255})
	blue := JPEG(t, 4, 4, color.RGBA{B: 200, A: 255})
	mask := JPEG(t, 4, 4, color.Gray{Y: 128})

	content := "q 8 0 0 8 72 600 cm /Im0 Do Q q 4 0 0 4 72 500 cm /Im1 Do Q BT /F1 24 Tf 72 720 Td (Hello) Tj ET"
	path := Write(t, "images.pdf", []Object{
		{Dict: "<< /Type /Catalog /Pages 2 0 R >>"},
		{Dict: "<< /Type /Pages /Kids [3 0 R] /Count 1 >>"},
		{Dict: "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> /XObject << /Im0 6 0 R /Im1 7 0 R >> >> /Contents 4 0 R >>"},
		{Dict: "<< >>", Stream: []byte(content)},
		{Dict: "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 8 /Height 8 /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode >>", Stream: red},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 4 /Height 4 /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /SMask 8 0 R >>", Stream: blue},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 4 /Height 4 /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /DCTDecode >>", Stream: mask},
	})
	return ImagePDF{Path: path, JPEGs: [][]byte{red, blue}}
}

// BrokenImages writes a one-page PDF with three image XObjects. /Im0 and
// /Im2 are JPEGs; /Im1 claims FlateDecode but its stream is not zlib data,
// so it cannot be decoded.
func BrokenImages(t testing.TB) ImagePDF {
	t.Helper()

	first := JPEG(t, 8, 8, color.RGBA{G: 200, A: 255})
	last := JPEG(t, 8, 8, color.RGBA{R: 90, G: 90, A: 255})

	content := "q 8 0 0 8 72 600 cm /Im0 Do Q q 8 0 0 8 72 500 cm /Im1 Do Q q 8 0 0 8 72 400 cm /Im2 Do Q"
	path := Write(t, "broken.pdf", []Object{
		{Dict: "<< /Type /Catalog /Pages 2 0 R >>"},
		{Dict: "<< /Type /Pages /Kids [3 0 R] /Count 1 >>"},
		{Dict: "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /XObject << /Im0 5 0 R /Im1 6 0 R /Im2 7 0 R >> >> /Contents 4 0 R >>"},
		{Dict: "<< >>", Stream: []byte(content)},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 8 /Height 8 /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode >>", Stream: first},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 8 /Height 8 /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /FlateDecode >>", Stream: []byte("this is not zlib data")},
		{Dict: "<< /Type /XObject /Subtype /Image /Width 8 /Height 8 /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode >>", Stream: last},
	})
	return ImagePDF{Path: path, JPEGs: [][]byte{first, last}}
}
