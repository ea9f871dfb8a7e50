package document

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docuveil/docuveil/internal/faults"
)

func TestSniffType(t *testing.T) {
	tests := []struct {
		filename string
		want     FileType
		wantErr  bool
	}{
		{"contract.docx", TypeDOCX, false},
		{"Contract.DOCX", TypeDOCX, false},
		{"scan.pdf", TypePDF, false},
		{"photo.jpg", TypeImage, false},
		{"photo.jpeg", TypeImage, false},
		{"shot.png", TypeImage, false},
		{"fax.tiff", TypeImage, false},
		{"legacy.doc", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := sniffType(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sniffType(%q) error = %v, wantErr %t", tt.filename, err, tt.wantErr)
			}
			if err != nil {
				if faults.KindOf(err) != faults.InvalidInput {
					t.Errorf("expected InvalidInput, got %s", faults.KindOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("sniffType(%q) = %s, want %s", tt.filename, got, tt.want)
			}
		})
	}
}

const documentXMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`

// writeDOCX builds a minimal docx whose document.xml carries the given
// body fragment.
func writeDOCX(t *testing.T, body string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXMLHeader + "<w:body>" + body + "</w:body></w:document>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractDOCXText(t *testing.T) {
	body := `<w:p><w:r><w:t>甲方：张三</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>联系电话：</w:t></w:r><w:r><w:t>13812345678</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">  </w:t></w:r></w:p>` +
		`<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>姓名</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>李四</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>`

	content, err := extractDOCXText(writeDOCX(t, body))
	if err != nil {
		t.Fatalf("extractDOCXText() error = %v", err)
	}

	want := "甲方：张三\n联系电话：13812345678\n姓名 | 李四"
	if content != want {
		t.Errorf("content = %q, want %q", content, want)
	}
}

func TestExtractDOCXText_NotADocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := extractDOCXText(path); faults.KindOf(err) != faults.ParseError {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestExtractDOCXText_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<w:styles/>"))
	zw.Close()

	path := filepath.Join(t.TempDir(), "empty.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := extractDOCXText(path); faults.KindOf(err) != faults.ParseError {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestStore_Lifecycle(t *testing.T) {
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	data := []byte("fake image bytes")
	meta, err := s.Save("photo.png", data)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if meta.FileType != TypeImage || meta.Size != int64(len(data)) {
		t.Errorf("unexpected metadata %+v", meta)
	}

	got, err := s.Get(meta.ID)
	if err != nil || got.Filename != "photo.png" {
		t.Errorf("Get() = %+v, %v", got, err)
	}

	back, err := s.Read(meta.ID)
	if err != nil || string(back) != string(data) {
		t.Errorf("Read() did not round-trip: %v", err)
	}

	if list := s.List(); len(list) != 1 {
		t.Errorf("expected 1 document, got %d", len(list))
	}

	if err := s.Delete(meta.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(meta.ID); faults.KindOf(err) != faults.NotFound {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	if _, err := os.Stat(meta.StoredPath); !os.IsNotExist(err) {
		t.Error("expected the stored file to be removed")
	}
}

func TestStore_SaveRejections(t *testing.T) {
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("contract.docx", nil); faults.KindOf(err) != faults.InvalidInput {
		t.Errorf("empty upload: got %v", err)
	}
	if _, err := s.Save("legacy.doc", []byte("x")); faults.KindOf(err) != faults.InvalidInput {
		t.Errorf("legacy .doc: got %v", err)
	}
}

func TestStore_ParseDOCX(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	docxPath := writeDOCX(t, `<w:p><w:r><w:t>联系电话：13812345678</w:t></w:r></w:p>`)
	data, err := os.ReadFile(docxPath)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := s.Save("contract.docx", data)
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Parse(meta.ID)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.IsScanned {
		t.Error("a docx is never scanned")
	}
	if !strings.Contains(result.Content, "13812345678") {
		t.Errorf("content = %q", result.Content)
	}
	if result.PageCount != 1 || len(result.Pages) != 1 {
		t.Errorf("unexpected paging %+v", result)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := s.Save("photo.png", []byte("bytes"))
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Get(meta.ID); err != nil {
		t.Errorf("metadata lost across restart: %v", err)
	}
}

func TestStore_Lock(t *testing.T) {
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Lock("a") != s.Lock("a") {
		t.Error("the same id must share one mutex")
	}
	if s.Lock("a") == s.Lock("b") {
		t.Error("different ids must not share a mutex")
	}
}
