package hybrid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/matcher"
	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// newDetector wires a detector against a scripted chat server that replies
// with the given contents in call order.
func newDetector(t *testing.T, replies []string) *Detector {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls >= len(replies) {
			http.Error(w, "no script", http.StatusInternalServerError)
			return
		}
		content := replies[calls]
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	store, err := taxonomy.NewStore("", nil)
	if err != nil {
		t.Fatal(err)
	}
	recognizer := ner.NewClient(ner.WithBaseURL(srv.URL))
	return New(recognizer, matcher.New(store), store, nil)
}

func TestDetect_RegexAndNeuralCollapse(t *testing.T) {
	d := newDetector(t, []string{`{"联系方式": ["13812345678"]}`})

	doc := "联系电话：13812345678。"
	result, err := d.Detect(context.Background(), doc, []string{"PHONE"}, ModeNER)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(result.Entities) != 1 {
		t.Fatalf("expected the duplicate span to collapse, got %d entities", len(result.Entities))
	}

	e := result.Entities[0]
	if e.Start != 5 || e.End != 16 {
		t.Errorf("expected span [5,16), got [%d,%d)", e.Start, e.End)
	}
	if e.Source != entity.SourceRegex {
		t.Errorf("the format-bound stage must win the span, got %s", e.Source)
	}
	if e.Confidence != 0.99 {
		t.Errorf("the group keeps the highest confidence, got %f", e.Confidence)
	}
	if e.ID != "entity_0" {
		t.Errorf("expected rewritten id entity_0, got %s", e.ID)
	}
	if !e.Selected {
		t.Error("detected entities default to selected")
	}
}

func TestDetect_LongestSpanWins(t *testing.T) {
	d := newDetector(t, []string{`{"人名": ["张三丰", "张三"]}`})

	result, err := d.Detect(context.Background(), "张三丰是武当派宗师。", []string{"PERSON"}, ModeNER)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(result.Entities) != 1 {
		t.Fatalf("expected the prefix to be shadowed, got %d entities", len(result.Entities))
	}
	if result.Entities[0].Text != "张三丰" {
		t.Errorf("expected the longer surface form, got %q", result.Entities[0].Text)
	}
}

func TestDetect_Coreference(t *testing.T) {
	d := newDetector(t, []string{`{"人名": ["张三", "李四"]}`})

	result, err := d.Detect(context.Background(), "张三向张三的朋友李四转账。", []string{"PERSON"}, ModeNER)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(result.Entities) != 3 {
		t.Fatalf("expected both occurrences plus 李四, got %d entities", len(result.Entities))
	}

	byText := make(map[string][]entity.Entity)
	for i, e := range result.Entities {
		byText[e.Text] = append(byText[e.Text], e)
		if want := fmt.Sprintf("entity_%d", i); e.ID != want {
			t.Errorf("expected id %s in start order, got %s", want, e.ID)
		}
	}
	zhang := byText["张三"]
	if len(zhang) != 2 || zhang[0].CorefID != zhang[1].CorefID {
		t.Error("repeated mentions must share a coref id")
	}
	li := byText["李四"]
	if len(li) != 1 || li[0].CorefID == zhang[0].CorefID {
		t.Error("distinct persons must not share a coref id")
	}
}

func TestDetect_DegradesToRegexOnly(t *testing.T) {
	d := newDetector(t, nil)

	// The scripted server replies 500 to everything, taking the neural
	// stage down.
	doc := "联系电话：13812345678。"
	result, err := d.Detect(context.Background(), doc, []string{"PHONE", "PERSON"}, ModeNER)
	if err != nil {
		t.Fatalf("Detect() must survive a neural outage, got %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a degradation warning")
	}
	if len(result.Entities) != 1 || result.Entities[0].Source != entity.SourceRegex {
		t.Errorf("expected the regex match to survive, got %+v", result.Entities)
	}
}

func TestDetect_HideMode(t *testing.T) {
	d := newDetector(t, []string{
		`{"人名": ["张三"]}`,
		`<人物[0].个人.姓名>在上海工作。`,
		`{"<人物[0].个人.姓名>": ["张三"]}`,
	})

	result, err := d.Detect(context.Background(), "张三在上海工作。", []string{"PERSON"}, ModeHide)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if result.Masked != "<人物[0].个人.姓名>在上海工作。" {
		t.Errorf("masked = %q", result.Masked)
	}
	if len(result.Mapping) != 1 {
		t.Errorf("mapping = %v", result.Mapping)
	}
	if len(result.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(result.Entities))
	}
	e := result.Entities[0]
	if e.CorefID != "<人物[0].个人.姓名>" {
		t.Errorf("the structured tag must become the coref id, got %q", e.CorefID)
	}
	if e.Type != "PERSON" {
		t.Errorf("tag category 人物 must map to PERSON, got %s", e.Type)
	}
}

func TestDetect_EmptyDocument(t *testing.T) {
	d := newDetector(t, nil)

	result, err := d.Detect(context.Background(), "", []string{"PHONE"}, ModeAuto)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(result.Entities) != 0 || len(result.Warnings) != 0 {
		t.Errorf("expected an empty result, got %+v", result)
	}
}

func TestOccurrences(t *testing.T) {
	spans := occurrences([]rune("张三和张三"), []rune("张三"))
	if len(spans) != 2 || spans[0] != [2]int{0, 2} || spans[1] != [2]int{3, 5} {
		t.Errorf("unexpected spans %v", spans)
	}
	if occurrences([]rune("abc"), nil) != nil {
		t.Error("empty needle must yield nothing")
	}
	if occurrences([]rune("ab"), []rune("abc")) != nil {
		t.Error("needle longer than haystack must yield nothing")
	}
}
