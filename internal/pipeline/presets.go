package pipeline

// Preset type lists follow the GB/T 37964-2019 identifier taxonomy. The
// OCR pipeline covers textual identifiers; the vision pipeline covers
// visual elements OCR cannot express.

func presetPipelines() map[Mode]Config {
	return map[Mode]Config{
		ModeOCRHaS: {
			Mode:        ModeOCRHaS,
			Name:        "OCR + HaS (本地)",
			Description: "PaddleOCR-VL 提取文字 + HaS 本地模型识别敏感信息。适合文字多的场景：聊天记录、扫描件、合同文档。完全离线。",
			Enabled:     true,
			Types:       presetOCRHaSTypes(),
		},
		ModeGLMVision: {
			Mode:        ModeGLMVision,
			Name:        "GLM Vision (本地)",
			Description: "本地视觉大模型识别。适合签名、指纹、证件照、二维码等视觉元素，是对 OCR 的补充。",
			Enabled:     true,
			Types:       presetGLMVisionTypes(),
		},
	}
}

func presetOCRHaSTypes() []TypeConfig {
	return []TypeConfig{
		{ID: "PERSON", Name: "姓名", Description: "自然人姓名、曾用名、昵称、绰号等",
			Examples: []string{"张三", "李明华", "老王", "John Smith"}, Color: "#3B82F6", Enabled: true, Order: 1},
		{ID: "ID_CARD", Name: "身份证号", Description: "18位/15位居民身份证号码",
			Examples: []string{"110101199003071234", "11010119900307123X"}, Color: "#EF4444", Enabled: true, Order: 2},
		{ID: "PASSPORT", Name: "护照号/通行证", Description: "护照、港澳通行证、台湾通行证号码",
			Examples: []string{"E12345678", "G87654321"}, Color: "#DC2626", Enabled: true, Order: 3},
		{ID: "PHONE", Name: "电话号码", Description: "手机号、固话、传真、400电话等",
			Examples: []string{"13812345678", "021-12345678", "400-123-4567"}, Color: "#F97316", Enabled: true, Order: 4},
		{ID: "EMAIL", Name: "电子邮箱", Description: "个人/工作/企业电子邮件地址",
			Examples: []string{"user@example.com", "hr@company.cn"}, Color: "#06B6D4", Enabled: true, Order: 5},
		{ID: "BANK_CARD", Name: "银行卡号", Description: "借记卡、信用卡卡号（16-19位）",
			Examples: []string{"6222020200012345678", "4367421234567890"}, Color: "#EC4899", Enabled: true, Order: 6},
		{ID: "BANK_ACCOUNT", Name: "银行账号", Description: "银行存款账号、对公账号、结算账号等数字账号",
			Examples: []string{"账号：1234567890123456789", "对公账号：11001234567890"}, Color: "#DB2777", Enabled: true, Order: 7},
		{ID: "BANK_NAME", Name: "开户行/银行名称", Description: "开户银行全称、支行名称、银行机构名",
			Examples: []string{"中国工商银行北京朝阳支行", "招商银行深圳南山支行"}, Color: "#7C3AED", Enabled: true, Order: 7},
		{ID: "SOCIAL_SECURITY", Name: "社保号/公积金号", Description: "社保卡号、医保号、公积金账号",
			Examples: []string{"社保卡号：12345678901234567"}, Color: "#B91C1C", Enabled: true, Order: 8},
		{ID: "QQ_WECHAT_ID", Name: "社交账号", Description: "QQ号、微信号、微博、抖音等社交平台账号",
			Examples: []string{"QQ：123456789", "微信号：zhang_san_123"}, Color: "#8B5CF6", Enabled: true, Order: 9},
		{ID: "COMPANY", Name: "公司/企业名称",
			Description: "商业企业名称，含全称、简称、曾用名、品牌名。法律文书中常以甲方、乙方、发包方、承包方、出借人、借款人等代称出现。",
			Examples:    []string{"深圳市腾讯计算机系统有限公司", "腾讯", "甲方", "乙方"}, Color: "#059669", Enabled: true, Order: 10},
		{ID: "ORG", Name: "机构/单位名称", Description: "政府机关、法院、检察院、律所、银行、医院、学校等非企业机构（含简称）",
			Examples: []string{"某市中级人民法院", "某某律师事务所", "XX大学附属医院"}, Color: "#10B981", Enabled: true, Order: 11},
		{ID: "ADDRESS", Name: "详细地址", Description: "省市区街道门牌号、小区楼栋、写字楼等完整地址",
			Examples: []string{"北京市朝阳区建国路88号", "住所地：XX大厦2001室"}, Color: "#6366F1", Enabled: true, Order: 11},
		{ID: "BIRTH_DATE", Name: "出生日期", Description: "出生年月日",
			Examples: []string{"1990年3月7日", "出生于1985-06-15"}, Color: "#84CC16", Enabled: true, Order: 12},
		{ID: "DATE", Name: "日期/时间", Description: "事件日期、签订日期、裁判日期等",
			Examples: []string{"2024年1月1日", "2024-01-01"}, Color: "#22D3EE", Enabled: true, Order: 13},
		{ID: "LICENSE_PLATE", Name: "车牌号", Description: "机动车号牌",
			Examples: []string{"京A12345", "粤AD12345"}, Color: "#14B8A6", Enabled: true, Order: 14},
		{ID: "CASE_NUMBER", Name: "案件编号", Description: "法院案号、仲裁案号、公证书编号",
			Examples: []string{"(2024)京01民初123号"}, Color: "#8B5CF6", Enabled: true, Order: 15},
		{ID: "CONTRACT_NO", Name: "合同/文书编号", Description: "合同号、协议号、订单号、发票号、保单号等",
			Examples: []string{"HT-2024-001", "保单号：PICC2024001234"}, Color: "#64748B", Enabled: true, Order: 16},
		{ID: "COMPANY_CODE", Name: "信用代码/注册号", Description: "统一社会信用代码、营业执照注册号",
			Examples: []string{"91110000100000000X"}, Color: "#059669", Enabled: true, Order: 17},
		{ID: "AMOUNT", Name: "金额/财务数据", Description: "涉案金额、工资、借款、赔偿、违约金、利息等",
			Examples: []string{"人民币10万元", "借款本金50万元"}, Color: "#F43F5E", Enabled: true, Order: 20},
		{ID: "PROPERTY", Name: "财产/资产", Description: "房产证号、不动产权证号、股权、存款等",
			Examples: []string{"不动产权证号：京(2024)朝阳区001号"}, Color: "#FB7185", Enabled: true, Order: 21},
		{ID: "LEGAL_PARTY", Name: "当事人", Description: "原告、被告、申请人、第三人、债权人、债务人等",
			Examples: []string{"原告张三", "被告某公司", "被执行人"}, Color: "#F59E0B", Enabled: true, Order: 30},
		{ID: "LAWYER", Name: "律师/代理人", Description: "律师、委托代理人、辩护人及所属律所",
			Examples: []string{"北京某律所律师张三", "辩护人：王某某"}, Color: "#A855F7", Enabled: true, Order: 31},
		{ID: "JUDGE", Name: "法官/书记员", Description: "审判长、审判员、书记员、人民陪审员、法官助理",
			Examples: []string{"审判长：张某某", "书记员：李某"}, Color: "#0EA5E9", Enabled: true, Order: 32},
		{ID: "WITNESS", Name: "证人/鉴定人", Description: "证人、鉴定人、评估人、翻译人员",
			Examples: []string{"证人张某", "鉴定人：王某某"}, Color: "#78716C", Enabled: true, Order: 33},
		{ID: "SEAL", Name: "印章/公章", Description: "印章区域及印章内文字（公章、合同章、法院印章、财务章等）",
			Examples: []string{"XX有限公司公章", "合同专用章"}, Color: "#DC143C", Enabled: true, Order: 90},
	}
}

func presetGLMVisionTypes() []TypeConfig {
	return []TypeConfig{
		{ID: "LOGO", Name: "Logo/认证标志", Description: "各类 Logo、认证标志、徽章、图标。如 CMA、CNAS、ISO 认证标志，企业 Logo。每个 Logo 单独框选。",
			Examples: []string{"CMA", "CNAS", "ISO9001", "CE"}, Color: "#6366F1", Enabled: true, Order: 0},
		{ID: "SIGNATURE", Name: "手写签名/签字", Description: "手写签名、签字、花体签名、连笔签名区域。含中英文签名。",
			Color: "#3B82F6", Enabled: true, Order: 1},
		{ID: "FINGERPRINT", Name: "指纹/手印/捺印", Description: "红色指纹、按手印、捺印、拇指印区域。法律文书中常见于合同签署处。",
			Color: "#F97316", Enabled: true, Order: 2},
		{ID: "PHOTO", Name: "人物照片/头像", Description: "证件照、身份证照片、聊天头像、人物肖像、视频截图中的人脸区域。",
			Color: "#8B5CF6", Enabled: true, Order: 3},
		{ID: "QR_CODE", Name: "二维码/条形码", Description: "微信二维码、支付二维码、小程序码、条形码、快递单条码等可扫描编码区域。",
			Color: "#10B981", Enabled: true, Order: 4},
		{ID: "HANDWRITING", Name: "手写文字/批注", Description: "手写批注、手写备注、手写修改痕迹、手写数字、手写日期、手写金额等非印刷体文字。",
			Color: "#06B6D4", Enabled: true, Order: 5},
		{ID: "WATERMARK", Name: "水印/暗纹", Description: "含个人信息的水印文字、公司水印、机密标记、斜体水印、底纹暗纹等。",
			Color: "#A3A3A3", Enabled: true, Order: 6},
		{ID: "CHAT_BUBBLE", Name: "聊天气泡/对话框", Description: "微信聊天气泡、短信对话框、钉钉消息等含敏感内容的聊天界面区域。",
			Color: "#F472B6", Enabled: true, Order: 7},
		{ID: "SENSITIVE_TABLE", Name: "敏感表格区域", Description: "银行流水表格、工资条、体检报告表格、征信报告等含大量敏感数据的表格区域。",
			Color: "#FB923C", Enabled: true, Order: 8},
	}
}
