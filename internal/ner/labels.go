package ner

import "strings"

// typeToLabel maps taxonomy ids to the Chinese category labels the
// recognizer was trained on.
var typeToLabel = map[string]string{
	"PERSON":       "人名",
	"LEGAL_PARTY":  "人名",
	"LAWYER":       "人名",
	"JUDGE":        "人名",
	"WITNESS":      "人名",
	"ORG":          "组织",
	"WORK_UNIT":    "组织",
	"BANK_NAME":    "组织",
	"ADDRESS":      "地址",
	"OCCUPATION":   "职务",
	"PHONE":        "联系方式",
	"ID_CARD":      "身份证号",
	"BANK_CARD":    "银行卡号",
	"BANK_ACCOUNT": "银行卡号",
	"CASE_NUMBER":  "案件编号",
	"AMOUNT":       "金额",
	"DATE":         "日期",
	"CONTRACT_NO":  "合同编号",
	"EMAIL":        "邮箱",
}

// labelToType reverse-maps the recognizer's chosen label back to a taxonomy
// id, accepting known synonyms.
var labelToType = map[string]string{
	"人名":    "PERSON",
	"姓名":    "PERSON",
	"人物":    "PERSON",
	"当事人":   "LEGAL_PARTY",
	"组织":    "ORG",
	"机构":    "ORG",
	"公司":    "ORG",
	"单位":    "ORG",
	"地址":    "ADDRESS",
	"住址":    "ADDRESS",
	"地点":    "ADDRESS",
	"职务":    "OCCUPATION",
	"职业":    "OCCUPATION",
	"联系方式":  "PHONE",
	"电话":    "PHONE",
	"手机号":   "PHONE",
	"身份证号":  "ID_CARD",
	"证件号":   "ID_CARD",
	"身份证":   "ID_CARD",
	"银行卡号":  "BANK_CARD",
	"账号":    "BANK_CARD",
	"银行卡":   "BANK_CARD",
	"案件编号":  "CASE_NUMBER",
	"案号":    "CASE_NUMBER",
	"车牌":    "LICENSE_PLATE",
	"金额":    "AMOUNT",
	"日期":    "DATE",
	"日期/时间": "DATE",
	"时间":    "TIME",
	"合同编号":  "CONTRACT_NO",
	"邮箱":    "EMAIL",
	"邮件":    "EMAIL",
}

// LabelForType returns the recognizer label for a taxonomy id. Unknown ids
// pass through unchanged so custom types reach the model verbatim.
func LabelForType(typeID string) string {
	if label, ok := typeToLabel[typeID]; ok {
		return label
	}
	return typeID
}

// LabelsForTypes converts a type-id list to a deduplicated label list in
// input order.
func LabelsForTypes(typeIDs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range typeIDs {
		label := LabelForType(id)
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}

// TypeForLabel maps a recognizer label back to a taxonomy id. Unknown
// labels are uppercased as a last resort, matching custom type ids.
func TypeForLabel(label string) string {
	if id, ok := labelToType[label]; ok {
		return id
	}
	return strings.ToUpper(label)
}
