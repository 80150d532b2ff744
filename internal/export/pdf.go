// Package export renders songs to print and playback formats.
package export

import (
	"fmt"
	"io"

	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 8.5
	pageHeight = 11.0
	padding    = 0.6
	colGap     = 0.3

	titlePt    = 20.0
	subtitlePt = 11.0
	maxLinePt  = 11.0
	minLinePt  = 6.0

	// courier advance width as a fraction of the point size
	courierAdvance = 0.6
	lineSpacing    = 1.25
)

// chord lines are printed in this blue, lyrics in black
var chordColor = [3]int{30, 64, 175}

type bounds struct {
	top    float64
	left   float64
	bottom float64
	right  float64
}

func (b bounds) Width() float64 {
	return b.right - b.left
}

func splitBoundsIntoColumns(bnd bounds, numCols int) []bounds {
	width := (bnd.right - bnd.left - colGap*float64(numCols-1)) / float64(numCols)
	cols := make([]bounds, 0, numCols)
	for i := 0; i < numCols; i++ {
		left := bnd.left + float64(i)*(width+colGap)
		cols = append(cols, bounds{
			top:    bnd.top,
			bottom: bnd.bottom,
			left:   left,
			right:  left + width,
		})
	}
	return cols
}

func ptToInches(pt float64) float64 {
	return pt / 72
}

// fitFontPt returns the largest size, up to maxLinePt, at which a line of
// maxChars courier characters fits in width.
func fitFontPt(maxChars int, width float64) float64 {
	pt := maxLinePt
	for pt > minLinePt && float64(maxChars)*ptToInches(pt)*courierAdvance > width {
		pt -= 0.5
	}
	return pt
}

// WritePDF writes a Letter-size print sheet for song rendered as sheet.
func WritePDF(w io.Writer, song models.Song, sheet chords.Sheet) error {
	pdf, err := buildPDF(song, sheet)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(song models.Song, sheet chords.Sheet) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(song.Title, true)
	pdf.SetAuthor(song.Artist, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	bnd := printHeader(pdf, tr, song, sheet)

	numCols := len(sheet.Columns)
	if numCols == 0 {
		return pdf, pdf.Error()
	}
	cols := splitBoundsIntoColumns(bnd, numCols)

	maxChars := 1
	for _, col := range sheet.Columns {
		for _, line := range col {
			maxChars = max(maxChars, len([]rune(line.Chords)), len([]rune(line.Lyrics)))
		}
	}
	pt := fitFontPt(maxChars, cols[0].Width())
	lineH := ptToInches(pt) * lineSpacing

	// each sheet column starts in its own print column; overflow moves to
	// the next free column, then to a fresh page
	colIdx := 0
	y := cols[0].top
	nextColumn := func() {
		colIdx++
		if colIdx >= len(cols) {
			pdf.AddPage()
			colIdx = 0
			cols = splitBoundsIntoColumns(bounds{padding, padding, pageHeight - padding, pageWidth - padding}, numCols)
		}
		y = cols[colIdx].top
	}

	for i, col := range sheet.Columns {
		if i > 0 {
			nextColumn()
		}
		for _, line := range col {
			need := lineH
			if line.HasChords {
				need += lineH
			}
			if y+need > cols[colIdx].bottom {
				nextColumn()
			}
			x := cols[colIdx].left
			if line.HasChords {
				pdf.SetFont("courier", "B", pt)
				pdf.SetTextColor(chordColor[0], chordColor[1], chordColor[2])
				y += lineH
				pdf.Text(x, y, tr(line.Chords))
			}
			pdf.SetFont("courier", "", pt)
			pdf.SetTextColor(0, 0, 0)
			y += lineH
			pdf.Text(x, y, tr(line.Lyrics))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

// printHeader prints the title block and returns the bounds left for the
// song body.
func printHeader(pdf *gofpdf.Fpdf, tr func(string) string, song models.Song, sheet chords.Sheet) bounds {
	bnd := bounds{padding, padding, pageHeight - padding, pageWidth - padding}

	y := bnd.top + ptToInches(titlePt)
	pdf.SetFont("courier", "B", titlePt)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(bnd.left, y, tr(song.Title))

	sub := "Key: " + sheet.Key
	if song.Artist != "" {
		sub = song.Artist + " - " + sub
	}
	y += ptToInches(subtitlePt) * 1.8
	pdf.SetFont("courier", "", subtitlePt)
	pdf.Text(bnd.left, y, tr(sub))

	y += ptToInches(subtitlePt)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.01)
	pdf.Line(bnd.left, y, bnd.right, y)

	bnd.top = y + ptToInches(subtitlePt)/2
	return bnd
}
