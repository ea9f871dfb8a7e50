package vlm

import "strings"

// typeSynonyms maps the free-form labels models answer with, Chinese and
// English, onto canonical region type ids.
var typeSynonyms = map[string]string{
	"PERSON": "PERSON", "PER": "PERSON", "人名": "PERSON", "姓名": "PERSON",
	"NICKNAME": "NICKNAME", "昵称": "NICKNAME", "人物昵称": "NICKNAME",
	"ORG": "ORG", "ORGANIZATION": "ORG", "机构": "ORG", "公司": "ORG", "单位": "ORG",
	"ID_CARD": "ID_CARD", "IDCARD": "ID_CARD", "身份证": "ID_CARD", "身份证号": "ID_CARD",
	"BANK_CARD": "BANK_CARD", "BANKCARD": "BANK_CARD", "银行卡": "BANK_CARD", "银行卡号": "BANK_CARD",
	"PHONE": "PHONE", "TEL": "PHONE", "电话": "PHONE", "手机": "PHONE", "手机号": "PHONE",
	"ADDRESS": "ADDRESS", "ADDR": "ADDRESS", "地址": "ADDRESS",
	"DATE": "DATE", "日期": "DATE",
	"MONEY": "AMOUNT", "AMOUNT": "AMOUNT", "金额": "AMOUNT",
	"SIGNATURE": "SIGNATURE", "签名": "SIGNATURE", "手写": "SIGNATURE", "签名/手写": "SIGNATURE",
	"SEAL": "SEAL", "公章": "SEAL", "印章": "SEAL", "公章/印章": "SEAL",
	"FINGERPRINT": "FINGERPRINT", "指纹": "FINGERPRINT", "手印": "FINGERPRINT", "指纹/手印": "FINGERPRINT",
	"PHOTO": "PHOTO", "证件照": "PHOTO", "照片": "PHOTO",
	"QR_CODE": "QR_CODE", "二维码": "QR_CODE", "条形码": "QR_CODE",
}

// NormalizeType folds a model-reported region label onto its canonical
// type id. Unmapped labels fall back to keyword matching, then pass
// through verbatim so custom prompt types survive the round-trip.
func NormalizeType(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return "CUSTOM"
	}
	if id, ok := typeSynonyms[strings.ToUpper(trimmed)]; ok {
		return id
	}
	if id, ok := typeSynonyms[trimmed]; ok {
		return id
	}

	switch {
	case strings.Contains(trimmed, "章") || strings.Contains(strings.ToLower(trimmed), "seal"):
		return "SEAL"
	case strings.Contains(trimmed, "签名") || strings.Contains(trimmed, "手写"):
		return "SIGNATURE"
	case strings.Contains(trimmed, "指纹") || strings.Contains(trimmed, "手印"):
		return "FINGERPRINT"
	case strings.Contains(trimmed, "照片") || strings.Contains(trimmed, "头像"):
		return "PHOTO"
	case strings.Contains(trimmed, "二维码") || strings.Contains(trimmed, "条码"):
		return "QR_CODE"
	}
	return trimmed
}
