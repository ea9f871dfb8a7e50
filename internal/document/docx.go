package document

import (
	"archive/zip"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/docuveil/docuveil/internal/faults"
)

// extractDOCXText reads word/document.xml and flattens paragraphs and
// tables to plain text. Table rows join their cells with " | " so the
// recognizer sees one field per segment.
func extractDOCXText(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", faults.Wrap(faults.ParseError, err, "not a valid docx file")
	}
	defer archive.Close()

	var docXML []byte
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", faults.Wrap(faults.ParseError, err, "cannot open document.xml")
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", faults.Wrap(faults.ParseError, err, "cannot read document.xml")
			}
			break
		}
	}
	if docXML == nil {
		return "", faults.New(faults.ParseError, "docx has no word/document.xml")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return "", faults.Wrap(faults.ParseError, err, "malformed document.xml")
	}
	body := doc.FindElement("//w:body")
	if body == nil {
		return "", faults.New(faults.ParseError, "document.xml has no body")
	}

	var segments []string
	for _, child := range body.ChildElements() {
		switch child.Tag {
		case "p":
			if text := strings.TrimSpace(paragraphText(child)); text != "" {
				segments = append(segments, text)
			}
		case "tbl":
			for _, row := range child.FindElements("w:tr") {
				var cells []string
				for _, cell := range row.FindElements("w:tc") {
					var parts []string
					for _, p := range cell.FindElements(".//w:p") {
						if text := strings.TrimSpace(paragraphText(p)); text != "" {
							parts = append(parts, text)
						}
					}
					if len(parts) > 0 {
						cells = append(cells, strings.Join(parts, " "))
					}
				}
				if len(cells) > 0 {
					segments = append(segments, strings.Join(cells, " | "))
				}
			}
		}
	}
	return strings.Join(segments, "\n"), nil
}

// paragraphText concatenates a paragraph's text runs.
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range p.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}
