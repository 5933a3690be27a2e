package export

import "strings"

// Placement is where one copy of the captured image lands on a page.
type Placement struct {
	Page   int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Layout slices an image of imgW x imgH pixels across pages of pageW x pageH
// document units. The image is scaled to the page width and the same image is
// drawn on every page, shifted up by one page height each time, so page k
// shows the band starting at k*pageH. A zero-height image still yields one page.
func Layout(imgW, imgH, pageW, pageH float64) []Placement {
	width := pageW
	var height float64
	if imgW > 0 {
		height = imgH * width / imgW
	}

	position := 0.0
	out := []Placement{{Page: 0, X: 0, Y: position, Width: width, Height: height}}
	if pageH <= 0 {
		return out
	}

	heightLeft := height - pageH
	for heightLeft > 0 {
		position = heightLeft - height
		out = append(out, Placement{Page: len(out), X: 0, Y: position, Width: width, Height: height})
		heightLeft -= pageH
	}
	return out
}

// Paginate draws img onto w following Layout and returns the page count.
// w must already contain its first page.
func Paginate(w DocumentWriter, img Image) (int, error) {
	imgW, imgH, err := w.ImageSize(img)
	if err != nil {
		return 0, err
	}
	pageW, pageH := w.PageSize()

	placements := Layout(imgW, imgH, pageW, pageH)
	for i, p := range placements {
		if i > 0 {
			w.AddPage()
		}
		if err := w.AddImage(img, img.Format, p.X, p.Y, p.Width, p.Height); err != nil {
			return 0, err
		}
	}
	return len(placements), nil
}

// Filename returns the download name for a résumé owned by name.
// Only ASCII spaces are replaced.
func Filename(name string) string {
	return "CV_" + strings.ReplaceAll(name, " ", "_") + "_ATS.pdf"
}
