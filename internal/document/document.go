// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document opens PDF files and exposes per-page text and embedded
// images. Text comes from ledongthuc/pdf; image enumeration and raw image
// bytes come from pdfcpu. Both read the same file handle, which Close
// releases.
package document

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu otherwise writes a config directory under the user's home.
	api.DisableConfigDir()
}

// ImageRef identifies one embedded image on a page.
type ImageRef struct {
	// PageNumber is the 1-based page the image is drawn on.
	PageNumber int

	// ObjectNumber is the PDF object number of the image XObject.
	ObjectNumber int

	// Name is the resource name of the image on the page (e.g. "Im0").
	Name string
}

// RawImage is the resolved content of an ImageRef.
type RawImage struct {
	// Data holds the image bytes as stored by the PDF library, not transcoded.
	Data []byte

	// Format is the file extension the library reports, e.g. "png" or "jpg".
	Format string
}

// Document is an opened PDF. Page numbers are 1-based.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the plain text of a page.
	PageText(pageNumber int) (string, error)

	// PageImages lists the embedded images of a page in a stable order.
	PageImages(pageNumber int) ([]ImageRef, error)

	// ResolveImage returns the raw bytes and format of an image.
	ResolveImage(ref ImageRef) (RawImage, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens the document at path.
type Opener func(path string) (Document, error)

// PDF is the production Document.
type PDF struct {
	file  *os.File
	text  *pdf.Reader
	ctx   *model.Context
	pages int
}

// Open opens the PDF at path and parses it with both libraries. Any failure
// closes the file before returning.
func Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	d, err := newPDF(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func newPDF(f *os.File) (*PDF, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", f.Name())
	}

	text, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading PDF structure: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.Cmd = model.EXTRACTIMAGES

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF objects: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validating PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	// Builds the per-page image tables PageImages reads.
	if err := api.OptimizeContext(ctx); err != nil {
		return nil, fmt.Errorf("indexing PDF resources: %w", err)
	}

	return &PDF{
		file:  f,
		text:  text,
		ctx:   ctx,
		pages: ctx.PageCount,
	}, nil
}

// PageCount returns the page count reported by the page tree.
func (d *PDF) PageCount() int {
	return d.pages
}

// PageText returns the plain text of a page. A page the text library cannot
// see yields an empty string. Panics inside the text library are returned
// as errors.
func (d *PDF) PageText(pageNumber int) (text string, err error) {
	if err := d.checkPage(pageNumber); err != nil {
		return "", err
	}
	if pageNumber > d.text.NumPage() {
		return "", nil
	}

	page := d.text.Page(pageNumber)
	if page.V.IsNull() {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("text extraction panicked: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// PageImages lists the image XObjects a page references, ordered by object
// number. Nothing is decoded here. Page thumbnails and images that only serve
// as another image's soft mask are left out.
func (d *PDF) PageImages(pageNumber int) ([]ImageRef, error) {
	if err := d.checkPage(pageNumber); err != nil {
		return nil, err
	}

	objNrs := pdfcpu.ImageObjNrs(d.ctx, pageNumber)
	masks := d.maskObjNrs(objNrs)
	if thumb, ok := d.ctx.PageThumbs[pageNumber]; ok {
		masks[thumb.ObjectNumber.Value()] = true
	}

	refs := make([]ImageRef, 0, len(objNrs))
	for _, objNr := range objNrs {
		if masks[objNr] {
			continue
		}
		refs = append(refs, ImageRef{
			PageNumber:   pageNumber,
			ObjectNumber: objNr,
			Name:         d.resourceName(objNr, pageNumber),
		})
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].ObjectNumber < refs[j].ObjectNumber
	})
	return refs, nil
}

// maskObjNrs returns the object numbers referenced as /SMask or /Mask
// streams by the given images.
func (d *PDF) maskObjNrs(objNrs []int) map[int]bool {
	masks := map[int]bool{}
	for _, objNr := range objNrs {
		obj, ok := d.ctx.Optimize.ImageObjects[objNr]
		if !ok || obj.ImageDict == nil {
			continue
		}
		for _, key := range []string{"SMask", "Mask"} {
			if ir := obj.ImageDict.IndirectRefEntry(key); ir != nil {
				masks[ir.ObjectNumber.Value()] = true
			}
		}
	}
	return masks
}

func (d *PDF) resourceName(objNr, pageNumber int) string {
	obj, ok := d.ctx.Optimize.ImageObjects[objNr]
	if !ok {
		return ""
	}
	return obj.ResourceNames[pageNumber-1]
}

// ResolveImage decodes the image ref points at and returns its bytes in the
// format pdfcpu writes it in. JPEG and JPEG 2000 streams come back verbatim.
// Decode failures and filters pdfcpu cannot render are errors for this image
// only.
func (d *PDF) ResolveImage(ref ImageRef) (img RawImage, err error) {
	if err := d.checkPage(ref.PageNumber); err != nil {
		return RawImage{}, err
	}

	obj, ok := d.ctx.Optimize.ImageObjects[ref.ObjectNumber]
	if !ok || obj.ImageDict == nil {
		return RawImage{}, fmt.Errorf("image object %d not found on page %d", ref.ObjectNumber, ref.PageNumber)
	}

	defer func() {
		if r := recover(); r != nil {
			img, err = RawImage{}, fmt.Errorf("decoding image object %d panicked: %v", ref.ObjectNumber, r)
		}
	}()

	decoded, err := pdfcpu.ExtractImage(d.ctx, obj.ImageDict, false, ref.Name, ref.ObjectNumber, false)
	if err != nil {
		return RawImage{}, fmt.Errorf("decoding image object %d: %w", ref.ObjectNumber, err)
	}
	if decoded == nil || decoded.Reader == nil {
		return RawImage{}, fmt.Errorf("image object %d has no decodable data", ref.ObjectNumber)
	}

	data, err := io.ReadAll(decoded.Reader)
	if err != nil {
		return RawImage{}, fmt.Errorf("reading image object %d: %w", ref.ObjectNumber, err)
	}

	return RawImage{
		Data:   data,
		Format: strings.ToLower(decoded.FileType),
	}, nil
}

// Close releases the file handle. Calling Close more than once is a no-op.
func (d *PDF) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *PDF) checkPage(pageNumber int) error {
	if pageNumber < 1 || pageNumber > d.pages {
		return fmt.Errorf("page %d out of range 1..%d", pageNumber, d.pages)
	}
	return nil
}
