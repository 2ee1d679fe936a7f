// Package export renders summary records as styled docx documents.
package export

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/omnibrief/omnibrief/internal/model"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
	headSize = 15
)

// WriteDocx writes the record as a formatted Word document at outputPath.
func WriteDocx(rec model.SummaryRecord, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), rec.FileName, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%s · %s · %d bytes",
		rec.CreatedAt.Format("2006-01-02 15:04"), rec.FileType, rec.FileSize), false, fontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Summary", true, headSize)
	addStyledRun(doc.AddParagraph(""), rec.Summary, false, fontSize)

	if len(rec.KeyPoints) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Key Points", true, headSize)
		for _, point := range rec.KeyPoints {
			addStyledRun(doc.AddParagraph(""), "• "+point, false, fontSize)
		}
	}

	if len(rec.Chapters) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Chapters", true, headSize)
		for _, ch := range rec.Chapters {
			p := doc.AddParagraph("")
			addStyledRun(p, ch.Time+" - "+ch.Title, true, fontSize)
			if ch.Description != "" {
				addStyledRun(doc.AddParagraph(""), ch.Description, false, fontSize)
			}
		}
	}

	if len(rec.Speakers) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Speakers", true, headSize)
		for _, sp := range rec.Speakers {
			addStyledRun(doc.AddParagraph(""), "• "+sp.Name+": "+sp.Traits, false, fontSize)
		}
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
