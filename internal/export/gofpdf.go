package export

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// DocumentWriter is the paged document being assembled.
type DocumentWriter interface {
	// AddImage draws img at x,y with size w,h on the current page.
	AddImage(img Image, format string, x, y, w, h float64) error
	AddPage()
	// PageSize returns the page dimensions in document units.
	PageSize() (w, h float64)
	// ImageSize returns the intrinsic dimensions of img.
	ImageSize(img Image) (w, h float64, err error)
	Save(out io.Writer) error
}

// DocumentFactory creates writers for a fixed page setup.
type DocumentFactory interface {
	Ready() bool
	New() (DocumentWriter, error)
}

// PDFFactory creates A4 portrait documents measured in millimetres.
type PDFFactory struct {
	Orientation string
	Unit        string
	Size        string
}

// NewPDFFactory returns the portrait A4 factory used for résumé exports.
func NewPDFFactory() *PDFFactory {
	return &PDFFactory{Orientation: "p", Unit: "mm", Size: "a4"}
}

// Ready reports whether the PDF library can be used. It is linked into the
// binary, so it always can.
func (f *PDFFactory) Ready() bool { return true }

// New starts a document with one empty page.
func (f *PDFFactory) New() (DocumentWriter, error) {
	pdf := gofpdf.New(f.Orientation, f.Unit, f.Size, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &pdfWriter{pdf: pdf, images: make(map[string]*gofpdf.ImageInfoType)}, nil
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	images map[string]*gofpdf.ImageInfoType
}

func (w *pdfWriter) register(img Image) (string, *gofpdf.ImageInfoType, error) {
	name := fmt.Sprintf("capture-%08x", crc32.ChecksumIEEE(img.Data))
	if info, ok := w.images[name]; ok {
		return name, info, nil
	}

	info := w.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: img.Format}, bytes.NewReader(img.Data))
	if err := w.pdf.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to register image: %w", err)
	}
	w.images[name] = info
	return name, info, nil
}

func (w *pdfWriter) AddImage(img Image, format string, x, y, width, height float64) error {
	name, _, err := w.register(img)
	if err != nil {
		return err
	}
	w.pdf.ImageOptions(name, x, y, width, height, false, gofpdf.ImageOptions{ImageType: format}, 0, "")
	return w.pdf.Error()
}

func (w *pdfWriter) AddPage() {
	w.pdf.AddPage()
}

func (w *pdfWriter) PageSize() (float64, float64) {
	return w.pdf.GetPageSize()
}

func (w *pdfWriter) ImageSize(img Image) (float64, float64, error) {
	_, info, err := w.register(img)
	if err != nil {
		return 0, 0, err
	}
	return info.Width(), info.Height(), nil
}

func (w *pdfWriter) Save(out io.Writer) error {
	return w.pdf.Output(out)
}
