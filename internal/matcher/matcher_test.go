package matcher

import (
	"testing"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

func newStore(t *testing.T) *taxonomy.Store {
	t.Helper()
	store, err := taxonomy.NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

func TestExtract_PhoneRuneOffsets(t *testing.T) {
	m := New(newStore(t))

	// CJK text: offsets must count runes, not bytes.
	doc := "联系电话：13812345678。"
	entities := m.Extract(doc, []string{"PHONE"})
	if len(entities) != 1 {
		t.Fatalf("expected 1 match, got %d", len(entities))
	}

	e := entities[0]
	if e.Text != "13812345678" {
		t.Errorf("expected match text 13812345678, got %q", e.Text)
	}
	if e.Start != 5 || e.End != 16 {
		t.Errorf("expected span [5,16), got [%d,%d)", e.Start, e.End)
	}
	if e.Source != entity.SourceRegex {
		t.Errorf("expected regex source, got %s", e.Source)
	}
	if e.Confidence != 0.99 {
		t.Errorf("expected format-bound confidence 0.99, got %f", e.Confidence)
	}
	if err := e.Validate([]rune(doc)); err != nil {
		t.Errorf("span does not match document: %v", err)
	}
}

func TestExtract_MultipleOccurrences(t *testing.T) {
	m := New(newStore(t))

	doc := "甲方电话13812345678，乙方电话13987654321。"
	entities := m.Extract(doc, []string{"PHONE"})
	if len(entities) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(entities))
	}
	if entities[0].Text == entities[1].Text {
		t.Error("expected distinct surface forms")
	}
}

func TestExtract_DisabledAndUnknownTypes(t *testing.T) {
	store := newStore(t)
	m := New(store)

	if _, err := store.Toggle("PHONE"); err != nil {
		t.Fatal(err)
	}
	if got := m.Extract("电话13812345678", []string{"PHONE"}); len(got) != 0 {
		t.Errorf("expected no matches for a disabled type, got %d", len(got))
	}
	if got := m.Extract("电话13812345678", []string{"NO_SUCH_TYPE"}); len(got) != 0 {
		t.Errorf("expected no matches for an unknown type, got %d", len(got))
	}
}

func TestExtract_TypeWithoutPattern(t *testing.T) {
	m := New(newStore(t))

	// PERSON has no regex; only the neural path covers it.
	if got := m.Extract("张三在上海工作。", []string{"PERSON"}); len(got) != 0 {
		t.Errorf("expected no regex matches for PERSON, got %d", len(got))
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	m := New(newStore(t))
	if got := m.Extract("", []string{"PHONE"}); got != nil {
		t.Errorf("expected nil for empty document, got %v", got)
	}
}
