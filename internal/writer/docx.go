package writer

import (
	"archive/zip"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/docuveil/docuveil/internal/faults"
)

// RedactDOCX rewrites a Word document with every replacement applied and
// writes the result to outputPath. Substitution happens at the run level
// so character formatting survives: each paragraph's runs are flattened
// to one string, matches are located there, and the paragraph is rebuilt
// with each inserted replacement carrying the style of the run the match
// started in. Returns the number of substitutions made.
func RedactDOCX(inputPath, outputPath string, replacements []Replacement) (int, error) {
	archive, err := zip.OpenReader(inputPath)
	if err != nil {
		return 0, faults.Wrap(faults.ParseError, err, "not a valid docx file")
	}
	defer archive.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot create output file")
	}
	defer out.Close()

	// Longer needles first so "张三丰" is never eaten by "张三".
	ordered := orderedByLength(replacements)

	zw := zip.NewWriter(out)
	total := 0
	for _, f := range archive.File {
		data, err := readZipEntry(f)
		if err != nil {
			return 0, err
		}
		if isWordPart(f.Name) {
			data, err = redactWordXML(data, ordered, &total)
			if err != nil {
				return 0, err
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return 0, faults.Wrap(faults.Internal, err, "cannot write output archive")
		}
		if _, err := w.Write(data); err != nil {
			return 0, faults.Wrap(faults.Internal, err, "cannot write output archive")
		}
	}
	if err := zw.Close(); err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot finalize output archive")
	}
	return total, nil
}

// isWordPart reports whether a zip entry carries body, header or footer
// content that needs substitution.
func isWordPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	return strings.HasPrefix(name, "word/header") && strings.HasSuffix(name, ".xml") ||
		strings.HasPrefix(name, "word/footer") && strings.HasSuffix(name, ".xml")
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot open archive entry %s", f.Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot read archive entry %s", f.Name)
	}
	return data, nil
}

func redactWordXML(data []byte, replacements []Replacement, total *int) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "malformed document part")
	}
	for _, p := range doc.FindElements("//w:p") {
		*total += redactParagraph(p, replacements)
	}
	doc.WriteSettings.CanonicalEndTags = true
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot serialize document part")
	}
	return out, nil
}

// redactParagraph applies the replacements inside one paragraph. Matches
// may span run boundaries, which is why substitution cannot work on the
// individual w:t elements.
func redactParagraph(p *etree.Element, replacements []Replacement) int {
	runs := p.SelectElements("w:r")
	if len(runs) == 0 {
		return 0
	}

	var sb strings.Builder
	var styleIDs []int
	for idx, run := range runs {
		text := runText(run)
		sb.WriteString(text)
		for range []byte(text) {
			styleIDs = append(styleIDs, idx)
		}
	}
	fullText := sb.String()
	if fullText == "" {
		return 0
	}

	type match struct {
		start, end  int
		replacement string
	}
	var matches []match
	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		start := 0
		for {
			pos := strings.Index(fullText[start:], r.Old)
			if pos < 0 {
				break
			}
			pos += start
			matches = append(matches, match{pos, pos + len(r.Old), r.New})
			start = pos + len(r.Old)
		}
	}
	if len(matches) == 0 {
		return 0
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		// A longer match is never eaten by its own prefix.
		return matches[i].end > matches[j].end
	})

	// Rebuild the paragraph text with one style id per byte so that
	// consecutive same-style spans collapse back into single runs.
	var rebuilt strings.Builder
	var rebuiltIDs []int
	lastEnd := 0
	replaced := 0
	for _, m := range matches {
		if m.start < lastEnd {
			continue
		}
		rebuilt.WriteString(fullText[lastEnd:m.start])
		rebuiltIDs = append(rebuiltIDs, styleIDs[lastEnd:m.start]...)
		styleID := styleIDs[m.start]
		rebuilt.WriteString(m.replacement)
		for range []byte(m.replacement) {
			rebuiltIDs = append(rebuiltIDs, styleID)
		}
		lastEnd = m.end
		replaced++
	}
	rebuilt.WriteString(fullText[lastEnd:])
	rebuiltIDs = append(rebuiltIDs, styleIDs[lastEnd:]...)
	if replaced == 0 {
		return 0
	}

	for _, run := range runs {
		p.RemoveChild(run)
	}

	text := rebuilt.String()
	pos := 0
	for pos < len(text) {
		styleID := rebuiltIDs[pos]
		next := pos + 1
		for next < len(text) && rebuiltIDs[next] == styleID {
			next++
		}
		p.AddChild(cloneRunWithText(runs[styleID], text[pos:next]))
		pos = next
	}
	return replaced
}

// runText concatenates a run's text nodes.
func runText(run *etree.Element) string {
	var sb strings.Builder
	for _, t := range run.SelectElements("w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// cloneRunWithText copies a run, keeping its w:rPr properties, and gives
// it a single w:t holding the new text.
func cloneRunWithText(src *etree.Element, text string) *etree.Element {
	run := src.Copy()
	for _, t := range run.SelectElements("w:t") {
		run.RemoveChild(t)
	}
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
	return run
}
