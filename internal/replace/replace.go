// Package replace generates replacement text for detected entities. A
// Context carries the per-document state that keeps one entity's
// replacement identical across every occurrence.
package replace

import (
	"strconv"
	"strings"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// Mode selects the replacement strategy.
type Mode string

const (
	// ModeSmart substitutes a numbered Chinese label, e.g. [电话一]
	ModeSmart Mode = "smart"

	// ModeMask keeps the text's length and redacts characters per type
	ModeMask Mode = "mask"

	// ModeStructured emits reversible semantic tags
	ModeStructured Mode = "structured"

	// ModeCustom uses a caller-provided map, falling back to smart
	ModeCustom Mode = "custom"
)

// smartLabels names each type in smart replacements.
var smartLabels = map[string]string{
	"PERSON":        "当事人",
	"ORG":           "公司",
	"ID_CARD":       "证件号",
	"PHONE":         "电话",
	"ADDRESS":       "地址",
	"BANK_CARD":     "账号",
	"CASE_NUMBER":   "案号",
	"DATE":          "日期",
	"MONEY":         "金额",
	"AMOUNT":        "金额",
	"EMAIL":         "邮箱",
	"LICENSE_PLATE": "车牌",
	"CONTRACT_NO":   "合同编号",
}

const defaultSmartLabel = "敏感信息"

var chineseNumerals = []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

// structuredFallbacks builds tags for types whose taxonomy entry carries
// no template.
var structuredFallbacks = map[string][2]string{
	"PERSON":        {"人物", "个人.姓名"},
	"ORG":           {"组织", "企业.完整名称"},
	"ADDRESS":       {"地点", "办公地址.完整地址"},
	"PHONE":         {"电话", "固定电话.号码"},
	"ID_CARD":       {"编号", "身份证.号码"},
	"BANK_CARD":     {"编号", "银行卡.号码"},
	"CASE_NUMBER":   {"编号", "案件编号.号码"},
	"DATE":          {"日期/时间", "具体日期.年月日"},
	"MONEY":         {"金额", "合同金额.数值"},
	"AMOUNT":        {"金额", "合同金额.数值"},
	"EMAIL":         {"邮箱", "个人邮箱.地址"},
	"LICENSE_PLATE": {"编号", "车牌.号码"},
	"CONTRACT_NO":   {"编号", "合同编号.代码"},
}

// Context is the replacement state for one document.
type Context struct {
	mode           Mode
	types          *taxonomy.Store
	corefMap       map[string]string
	entityMap      map[string]string
	typeCounters   map[string]int
	custom         map[string]string
	structuredTags map[string]string
}

// NewContext creates a replacement context. types may be nil; structured
// mode then skips taxonomy tag templates.
func NewContext(mode Mode, types *taxonomy.Store) *Context {
	return &Context{
		mode:           mode,
		types:          types,
		corefMap:       make(map[string]string),
		entityMap:      make(map[string]string),
		typeCounters:   make(map[string]int),
		custom:         make(map[string]string),
		structuredTags: make(map[string]string),
	}
}

// SetCustomReplacements installs the verbatim map used by custom mode.
func (c *Context) SetCustomReplacements(replacements map[string]string) {
	c.custom = replacements
}

// SetStructuredMapping installs the tag-to-originals map from the hide
// stage so structured mode reuses the recognizer's own tags.
func (c *Context) SetStructuredMapping(mapping map[string][]string) {
	for tag, values := range mapping {
		for _, v := range values {
			if v == "" {
				continue
			}
			if _, ok := c.structuredTags[v]; !ok {
				c.structuredTags[v] = tag
			}
		}
	}
}

// Replacement returns the replacement for an entity. The coref id, or
// failing that the surface text, keys the cache so every occurrence of
// one entity gets the same answer.
func (c *Context) Replacement(e entity.Entity) string {
	key := e.CorefID
	if key == "" {
		key = e.Text
	}
	if r, ok := c.corefMap[key]; ok {
		return r
	}

	var r string
	switch c.mode {
	case ModeCustom:
		if custom, ok := c.custom[e.Text]; ok {
			r = custom
		} else if e.Replacement != "" {
			r = e.Replacement
		} else {
			r = c.smart(e)
		}
	case ModeMask:
		r = mask(e)
	case ModeStructured:
		r = c.structured(e)
	default:
		r = c.smart(e)
	}

	c.corefMap[key] = r
	if _, ok := c.entityMap[e.Text]; !ok {
		c.entityMap[e.Text] = r
	}
	return r
}

// EntityMap returns the original-to-replacement map accumulated so far.
func (c *Context) EntityMap() map[string]string {
	out := make(map[string]string, len(c.entityMap))
	for k, v := range c.entityMap {
		out[k] = v
	}
	return out
}

func (c *Context) smart(e entity.Entity) string {
	label, ok := smartLabels[e.Type]
	if !ok {
		label = defaultSmartLabel
	}
	count := c.nextCount(e.Type)

	var num string
	if count <= 10 {
		num = chineseNumerals[count]
	} else {
		num = strconv.Itoa(count)
	}
	return "[" + label + num + "]"
}

// mask keeps the original length so the layout of forms and tables
// survives.
func mask(e entity.Entity) string {
	runes := []rune(e.Text)
	n := len(runes)

	switch e.Type {
	case "PERSON":
		if n >= 2 {
			return string(runes[0]) + strings.Repeat("*", n-1)
		}
		return "*"
	case "PHONE":
		if n >= 11 {
			return string(runes[:3]) + strings.Repeat("*", n-7) + string(runes[n-4:])
		}
	case "ID_CARD":
		if n >= 18 {
			return string(runes[:6]) + strings.Repeat("*", n-10) + string(runes[n-4:])
		}
	case "BANK_CARD":
		if n >= 16 {
			return strings.Repeat("*", n-4) + string(runes[n-4:])
		}
	}
	return strings.Repeat("*", n)
}

func (c *Context) structured(e entity.Entity) string {
	// The hide stage already assigned this occurrence a tag.
	if strings.HasPrefix(e.CorefID, "<") && strings.HasSuffix(e.CorefID, ">") {
		return e.CorefID
	}
	if tag, ok := c.structuredTags[e.Text]; ok {
		return tag
	}

	if template := c.tagTemplate(e.Type); template != "" {
		index := c.nextCount(e.Type)
		return strings.ReplaceAll(template, "{index}", pad3(index))
	}

	index := c.nextCount(e.Type)
	if fb, ok := structuredFallbacks[e.Type]; ok {
		return "<" + fb[0] + "[" + pad3(index) + "]." + fb[1] + ">"
	}
	return "<" + e.Type + "[" + pad3(index) + "].完整名称>"
}

func (c *Context) tagTemplate(typeID string) string {
	if c.types == nil {
		return ""
	}
	cfg, err := c.types.Get(typeID)
	if err != nil {
		return ""
	}
	return cfg.TagTemplate
}

func (c *Context) nextCount(typeID string) int {
	c.typeCounters[typeID]++
	return c.typeCounters[typeID]
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
