package taxonomy

// presets returns the built-in catalog. Entries may be disabled or edited by
// users but never deleted; Reset restores this list verbatim.
func presets() []EntityTypeConfig {
	return []EntityTypeConfig{
		// Direct identifiers
		{
			ID:          "PERSON",
			Name:        "姓名",
			Category:    CategoryDirect,
			Description: "自然人姓名，包括中文全名、英文名、曾用名、笔名、艺名、网名、昵称、绰号等一切可标识个人身份的称谓。",
			Examples:    []string{"张三", "李明华", "John Smith", "老王"},
			Color:       "#3B82F6",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<姓名[{index}].自然人.全名>",
			Order:       1,
			RiskLevel:   5,
		},
		{
			ID:           "ID_CARD",
			Name:         "身份证号",
			Category:     CategoryDirect,
			Description:  "中国大陆居民身份证号码，18位或15位。含末位X校验码。",
			Examples:     []string{"110101199003071234", "11010119900307123X"},
			Color:        "#EF4444",
			RegexPattern: `[1-9]\d{5}(?:19|20)\d{2}(?:0[1-9]|1[0-2])(?:0[1-9]|[12]\d|3[01])\d{3}[\dXx]`,
			Enabled:      true,
			TagTemplate:  "<证件号码[{index}].身份证.号码>",
			Order:        2,
			RiskLevel:    5,
			Confidence:   0.99,
		},
		{
			ID:           "PASSPORT",
			Name:         "护照号",
			Category:     CategoryDirect,
			Description:  "护照号码。中国普通护照以E开头、公务护照以G开头，后跟8位数字。含港澳通行证、台湾通行证。",
			Examples:     []string{"E12345678", "G87654321"},
			Color:        "#DC2626",
			RegexPattern: `[EeGgCc][A-Za-z]?\d{7,8}`,
			Enabled:      true,
			TagTemplate:  "<证件号码[{index}].护照.号码>",
			Order:        3,
			RiskLevel:    5,
			Confidence:   0.95,
		},
		{
			ID:          "SOCIAL_SECURITY",
			Name:        "社保号/医保号",
			Category:    CategoryDirect,
			Description: "社会保障卡号码、医疗保险号码、公积金账号、养老保险号、失业保险号等社会保障类编号。",
			Examples:    []string{"社保卡号：12345678901234567", "医保号：310100198901011234"},
			Color:       "#B91C1C",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<证件号码[{index}].社保卡.号码>",
			Order:       4,
			RiskLevel:   5,
		},
		{
			ID:          "DRIVER_LICENSE",
			Name:        "驾驶证号/行驶证号",
			Category:    CategoryDirect,
			Description: "机动车驾驶证号码（通常与身份证号一致）、行驶证号码、道路运输证号等。",
			Examples:    []string{"驾驶证号：110101199003071234", "行驶证号：京A12345"},
			Color:       "#991B1B",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<证件号码[{index}].驾驶证.号码>",
			Order:       5,
			RiskLevel:   5,
		},
		{
			ID:          "MILITARY_ID",
			Name:        "军官证/士兵证号",
			Category:    CategoryDirect,
			Description: "军官证号、士兵证号、军人保障卡号等军队证件号码。",
			Examples:    []string{"军官证号：军字第2024001234号"},
			Color:       "#7F1D1D",
			UseLLM:      true,
			Enabled:     false,
			TagTemplate: "<证件号码[{index}].军人证件.号码>",
			Order:       5,
			RiskLevel:   5,
		},
		{
			ID:           "PHONE",
			Name:         "电话号码",
			Category:     CategoryDirect,
			Description:  "手机号码、固定电话号码、传真号码、400/800客服电话等一切电话号码。实名制环境下属于直接标识符。",
			Examples:     []string{"13812345678", "021-12345678", "400-123-4567"},
			Color:        "#F97316",
			RegexPattern: `(?:\+86[-\s]?)?1[3-9]\d{9}|(?:0\d{2,3}[-\s]?)?\d{7,8}|400[-\s]?\d{3,4}[-\s]?\d{4}`,
			Enabled:      true,
			TagTemplate:  "<联系方式[{index}].电话.号码>",
			Order:        6,
			RiskLevel:    5,
			Confidence:   0.99,
		},
		{
			ID:           "EMAIL",
			Name:         "电子邮箱",
			Category:     CategoryDirect,
			Description:  "电子邮件地址，包括个人邮箱、工作邮箱、企业邮箱等。",
			Examples:     []string{"user@example.com", "lisi_2024@163.com"},
			Color:        "#06B6D4",
			RegexPattern: `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
			Enabled:      true,
			TagTemplate:  "<联系方式[{index}].邮箱.地址>",
			Order:        7,
			RiskLevel:    4,
			Confidence:   0.99,
		},
		{
			ID:          "QQ_WECHAT_ID",
			Name:        "QQ号/微信号",
			Category:    CategoryDirect,
			Description: "QQ号码、微信号、微博ID、抖音号等社交账号。实名制环境下可追溯个人身份。",
			Examples:    []string{"QQ：123456789", "微信号：zhang_san_123"},
			Color:       "#8B5CF6",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<联系方式[{index}].社交账号.ID>",
			Order:       7,
			RiskLevel:   4,
		},
		{
			ID:           "BANK_CARD",
			Name:         "银行卡号",
			Category:     CategoryDirect,
			Description:  "银行借记卡、信用卡卡号，16-19位数字。含VISA、MasterCard、银联卡号。",
			Examples:     []string{"6222021234567890123", "4367421234567890"},
			Color:        "#EC4899",
			RegexPattern: `(?:62|4|5)\d{14,17}`,
			Enabled:      true,
			TagTemplate:  "<金融账户[{index}].银行卡.号码>",
			Order:        8,
			RiskLevel:    5,
			Confidence:   0.99,
		},
		{
			ID:          "BANK_ACCOUNT",
			Name:        "银行账号",
			Category:    CategoryDirect,
			Description: "银行存款账号、对公账号、结算账号、保证金账号等数字账号。",
			Examples:    []string{"账号：1234567890123456789", "对公账号：11001234567890"},
			Color:       "#DB2777",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<金融账户[{index}].银行账号.号码>",
			Order:       9,
			RiskLevel:   5,
		},
		{
			ID:          "BANK_NAME",
			Name:        "开户行/银行名称",
			Category:    CategoryDirect,
			Description: "开户银行全称、支行名称、银行机构名。在法律文书和合同中常与账号配对出现。",
			Examples:    []string{"开户行：中国工商银行北京朝阳支行", "招商银行深圳南山支行"},
			Color:       "#7C3AED",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<金融账户[{index}].开户行.名称>",
			Order:       9,
			RiskLevel:   4,
		},
		{
			ID:          "PAYMENT_ACCOUNT",
			Name:        "支付账号",
			Category:    CategoryDirect,
			Description: "微信支付、支付宝、PayPal、数字货币钱包地址等第三方支付和数字资产账户。",
			Examples:    []string{"支付宝：user@example.com", "微信支付：138****1234"},
			Color:       "#BE185D",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<金融账户[{index}].支付账号.账号>",
			Order:       10,
			RiskLevel:   4,
		},
		{
			ID:          "TAX_ID",
			Name:        "纳税人识别号",
			Category:    CategoryDirect,
			Description: "纳税人识别号、税务登记号。企业为统一社会信用代码，个人为身份证号。",
			Examples:    []string{"纳税人识别号：91110000100000000X"},
			Color:       "#C2410C",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<金融账户[{index}].税号.号码>",
			Order:       10,
			RiskLevel:   4,
		},
		{
			ID:           "IP_ADDRESS",
			Name:         "IP地址",
			Category:     CategoryDirect,
			Description:  "互联网协议地址，IPv4或IPv6。可追溯到特定设备，属于直接标识符。",
			Examples:     []string{"192.168.1.1", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
			Color:        "#7C3AED",
			RegexPattern: `(?:\d{1,3}\.){3}\d{1,3}|(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}`,
			Enabled:      true,
			TagTemplate:  "<网络标识[{index}].IP地址.地址>",
			Order:        11,
			RiskLevel:    4,
			Confidence:   0.95,
		},
		{
			ID:           "MAC_ADDRESS",
			Name:         "MAC地址",
			Category:     CategoryDirect,
			Description:  "网卡物理地址，设备唯一标识。属于直接标识符。",
			Examples:     []string{"00:1A:2B:3C:4D:5E"},
			Color:        "#6D28D9",
			RegexPattern: `(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`,
			Enabled:      true,
			TagTemplate:  "<网络标识[{index}].MAC地址.地址>",
			Order:        12,
			RiskLevel:    4,
			Confidence:   0.95,
		},
		{
			ID:          "DEVICE_ID",
			Name:        "设备标识",
			Category:    CategoryDirect,
			Description: "IMEI、IMSI、设备序列号等设备唯一标识符。属于直接标识符。",
			Examples:    []string{"IMEI: 123456789012345"},
			Color:       "#5B21B6",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<网络标识[{index}].设备ID.标识>",
			Order:       13,
			RiskLevel:   4,
		},
		{
			ID:          "BIOMETRIC",
			Name:        "生物特征",
			Category:    CategoryDirect,
			Description: "指纹、虹膜、面部特征、声纹、DNA、步态等生物识别信息的文字描述。不可变更，终身有效。",
			Examples:    []string{"指纹编号：F001234", "DNA鉴定编号：DNA2024001"},
			Color:       "#4C1D95",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<生物特征[{index}].类型.标识>",
			Order:       14,
			RiskLevel:   5,
		},
		{
			ID:          "USERNAME_PASSWORD",
			Name:        "用户名/密码",
			Category:    CategoryDirect,
			Description: "登录用户名、密码、PIN码、验证码、密钥、Token等认证凭据。泄露后可直接导致账户被盗。",
			Examples:    []string{"用户名：admin", "密码：P@ssw0rd123"},
			Color:       "#450A0A",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<认证凭据[{index}].类型.内容>",
			Order:       15,
			RiskLevel:   5,
		},

		// Quasi identifiers
		{
			ID:           "BIRTH_DATE",
			Name:         "出生日期",
			Category:     CategoryQuasi,
			Description:  "出生年月日。单独不能识别个人，但与其他信息组合可能识别。",
			Examples:     []string{"1990年3月7日", "出生于1985-06-15"},
			Color:        "#84CC16",
			RegexPattern: `(?:出生[于日期：:]*|生日[：:]*)?\d{4}[-年/]\d{1,2}[-月/]\d{1,2}[日]?`,
			UseLLM:       true,
			Enabled:      true,
			TagTemplate:  "<人口统计[{index}].出生日期.日期>",
			Order:        20,
			RiskLevel:    3,
			Confidence:   0.95,
		},
		{
			ID:          "AGE",
			Name:        "年龄",
			Category:    CategoryQuasi,
			Description: "个人年龄信息，包括周岁、虚岁等表述。",
			Examples:    []string{"35岁", "现年42岁"},
			Color:       "#A3E635",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<人口统计[{index}].年龄.数值>",
			Order:       21,
			RiskLevel:   2,
		},
		{
			ID:          "GENDER",
			Name:        "性别",
			Category:    CategoryQuasi,
			Description: "个人性别信息。",
			Examples:    []string{"男", "女"},
			Color:       "#BEF264",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<人口统计[{index}].性别.类型>",
			Order:       22,
			RiskLevel:   1,
		},
		{
			ID:          "NATIONALITY",
			Name:        "国籍/民族",
			Category:    CategoryQuasi,
			Description: "国籍、民族、籍贯、户籍所在地等信息。",
			Examples:    []string{"汉族", "籍贯：湖南长沙"},
			Color:       "#D9F99D",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<人口统计[{index}].国籍民族.类型>",
			Order:       23,
			RiskLevel:   2,
		},
		{
			ID:          "MARITAL_STATUS",
			Name:        "婚姻状况",
			Category:    CategoryQuasi,
			Description: "婚姻状况、家庭关系等信息。",
			Examples:    []string{"已婚", "离异", "配偶：张某"},
			Color:       "#C084FC",
			UseLLM:      true,
			Enabled:     false,
			TagTemplate: "<人口统计[{index}].婚姻状况.类型>",
			Order:       23,
			RiskLevel:   2,
		},
		{
			ID:          "ADDRESS",
			Name:        "详细地址",
			Category:    CategoryQuasi,
			Description: "详细地址，包括省市区街道门牌号、小区楼栋单元室号、工业园区、写字楼等。含住址、户籍地、经营地址、送达地址等。",
			Examples:    []string{"北京市朝阳区某某路123号", "上海市浦东新区某某街道某某小区1栋101室"},
			Color:       "#6366F1",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<地理位置[{index}].详细地址.完整地址>",
			Order:       24,
			RiskLevel:   4,
		},
		{
			ID:           "POSTAL_CODE",
			Name:         "邮政编码",
			Category:     CategoryQuasi,
			Description:  "邮政编码。属于准标识符，可缩小地理范围。",
			Examples:     []string{"100000", "邮编：510000"},
			Color:        "#818CF8",
			RegexPattern: `(?:邮编[：:]*)?\d{6}`,
			Enabled:      true,
			TagTemplate:  "<地理位置[{index}].邮编.编码>",
			Order:        25,
			RiskLevel:    2,
			Confidence:   0.95,
		},
		{
			ID:           "GPS_LOCATION",
			Name:         "GPS坐标",
			Category:     CategoryQuasi,
			Description:  "GPS经纬度坐标。精确坐标可能识别特定位置，属于准标识符。",
			Examples:     []string{"39.9042° N, 116.4074° E"},
			Color:        "#A5B4FC",
			RegexPattern: `[\d.]+°?\s*[NS]?,?\s*[\d.]+°?\s*[EW]?|[经纬]度[：:]\s*[\d.]+`,
			UseLLM:       true,
			Enabled:      true,
			TagTemplate:  "<地理位置[{index}].GPS坐标.坐标>",
			Order:        26,
			RiskLevel:    3,
			Confidence:   0.95,
		},
		{
			ID:          "OCCUPATION",
			Name:        "职业/职务",
			Category:    CategoryQuasi,
			Description: "职业、职务、工作岗位等。属于准标识符。",
			Examples:    []string{"软件工程师", "职务：财务总监"},
			Color:       "#F472B6",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<职业教育[{index}].职业.名称>",
			Order:       27,
			RiskLevel:   2,
		},
		{
			ID:          "EDUCATION",
			Name:        "教育背景",
			Category:    CategoryQuasi,
			Description: "学历、毕业院校、专业等教育信息。属于准标识符。",
			Examples:    []string{"清华大学计算机系", "学历：硕士研究生"},
			Color:       "#F9A8D4",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<职业教育[{index}].学历.类型>",
			Order:       28,
			RiskLevel:   2,
		},
		{
			ID:          "WORK_UNIT",
			Name:        "工作单位",
			Category:    CategoryQuasi,
			Description: "所在公司、机构、单位名称。可缩小识别范围，属于准标识符。",
			Examples:    []string{"某某科技有限公司", "某市人民医院"},
			Color:       "#FBCFE8",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<职业教育[{index}].单位.名称>",
			Order:       29,
			RiskLevel:   3,
		},
		{
			ID:           "DATE",
			Name:         "日期",
			Category:     CategoryQuasi,
			Description:  "事件发生日期等时间信息。属于准标识符。",
			Examples:     []string{"2024年1月15日", "2024-01-15"},
			Color:        "#22D3EE",
			RegexPattern: `\d{4}年\d{1,2}月\d{1,2}日|\d{4}[-/]\d{1,2}[-/]\d{1,2}`,
			Enabled:      true,
			TagTemplate:  "<时间信息[{index}].日期.年月日>",
			Order:        30,
			RiskLevel:    2,
			Confidence:   0.95,
		},
		{
			ID:           "TIME",
			Name:         "时间",
			Category:     CategoryQuasi,
			Description:  "具体时刻信息。属于准标识符。",
			Examples:     []string{"14:30:00", "下午3点15分"},
			Color:        "#67E8F9",
			RegexPattern: `\d{1,2}[:：]\d{2}(?:[:：]\d{2})?|[上下]午\d{1,2}[点时]\d{0,2}分?`,
			UseLLM:       true,
			Enabled:      true,
			TagTemplate:  "<时间信息[{index}].时刻.时分>",
			Order:        31,
			RiskLevel:    1,
			Confidence:   0.95,
		},
		{
			ID:           "LICENSE_PLATE",
			Name:         "车牌号",
			Category:     CategoryQuasi,
			Description:  "机动车号牌。通过车辆登记信息可追溯到个人，属于准标识符。",
			Examples:     []string{"京A12345", "粤AD12345"},
			Color:        "#14B8A6",
			RegexPattern: `[京津沪渝冀豫云辽黑湘皖鲁新苏浙赣鄂桂甘晋蒙陕吉闽贵粤青藏川宁琼使领][A-Z][A-Z0-9]{5,6}`,
			Enabled:      true,
			TagTemplate:  "<车辆信息[{index}].车牌.号码>",
			Order:        32,
			RiskLevel:    3,
			Confidence:   0.95,
		},
		{
			ID:           "VIN",
			Name:         "车架号/VIN",
			Category:     CategoryQuasi,
			Description:  "车辆识别代号，17位字符。属于准标识符。",
			Examples:     []string{"LVHRU1869K5012345"},
			Color:        "#2DD4BF",
			RegexPattern: `[A-HJ-NPR-Z0-9]{17}`,
			UseLLM:       true,
			Enabled:      true,
			TagTemplate:  "<车辆信息[{index}].车架号.号码>",
			Order:        33,
			RiskLevel:    3,
			Confidence:   0.95,
		},

		// Sensitive attributes
		{
			ID:          "HEALTH_INFO",
			Name:        "健康/医疗信息",
			Category:    CategorySensitive,
			Description: "疾病诊断、病史、体检结果、用药记录、手术记录、残疾等级、精神状态等健康医疗信息。",
			Examples:    []string{"诊断：高血压", "残疾等级：二级"},
			Color:       "#F87171",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<敏感信息[{index}].健康.描述>",
			Order:       40,
			RiskLevel:   4,
		},
		{
			ID:          "MEDICAL_RECORD",
			Name:        "病历号/就诊号",
			Category:    CategorySensitive,
			Description: "医院病历号、门诊号、住院号、处方编号、检验报告编号等医疗编号。",
			Examples:    []string{"病历号：2024010001", "住院号：H20240115001"},
			Color:       "#FCA5A5",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<敏感信息[{index}].病历号.号码>",
			Order:       41,
			RiskLevel:   4,
		},
		{
			ID:          "AMOUNT",
			Name:        "金额/财务数据",
			Category:    CategorySensitive,
			Description: "涉案金额、工资收入、奖金、借款金额、赔偿金额、违约金、利息、财产价值等一切财务数字。含大写金额。",
			Examples:    []string{"人民币10万元", "叁拾万元整", "赔偿金额：￥200,000.00"},
			Color:       "#F43F5E",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<财务信息[{index}].金额.数值>",
			Order:       42,
			RiskLevel:   3,
		},
		{
			ID:          "PROPERTY",
			Name:        "财产/资产信息",
			Category:    CategorySensitive,
			Description: "房产、车辆、股权、存款、投资、保险、知识产权等财产和资产信息描述。含房产证号、不动产权证号。",
			Examples:    []string{"持有某公司30%股权", "名下有房产3处"},
			Color:       "#FB7185",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<财务信息[{index}].财产.描述>",
			Order:       43,
			RiskLevel:   3,
		},
		{
			ID:          "CRIMINAL_RECORD",
			Name:        "犯罪/违法记录",
			Category:    CategorySensitive,
			Description: "违法犯罪记录、刑事处罚、行政处罚、纪律处分、失信记录、限制消费令等。",
			Examples:    []string{"曾因盗窃罪被判处有期徒刑", "列入失信被执行人名单"},
			Color:       "#E11D48",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<敏感信息[{index}].犯罪记录.描述>",
			Order:       44,
			RiskLevel:   5,
		},
		{
			ID:          "POLITICAL",
			Name:        "政治面貌",
			Category:    CategorySensitive,
			Description: "政治面貌、党派成员身份、政治观点等。",
			Examples:    []string{"中共党员", "政治面貌：群众"},
			Color:       "#BE123C",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<敏感信息[{index}].政治面貌.类型>",
			Order:       45,
			RiskLevel:   3,
		},
		{
			ID:          "RELIGION",
			Name:        "宗教信仰",
			Category:    CategorySensitive,
			Description: "宗教信仰、宗教活动、宗教团体成员身份等信息。",
			Examples:    []string{"信仰佛教", "基督教徒"},
			Color:       "#9F1239",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<敏感信息[{index}].宗教信仰.类型>",
			Order:       46,
			RiskLevel:   3,
		},
		{
			ID:          "SEXUAL_ORIENTATION",
			Name:        "性取向/性别认同",
			Category:    CategorySensitive,
			Description: "性取向、性别认同等极度敏感个人信息。",
			Examples:    []string{"同性恋", "跨性别"},
			Color:       "#831843",
			UseLLM:      true,
			Enabled:     false,
			TagTemplate: "<敏感信息[{index}].性取向.类型>",
			Order:       47,
			RiskLevel:   5,
		},

		// Legal-document fields
		{
			ID:           "CASE_NUMBER",
			Name:         "案件编号",
			Category:     CategoryQuasi,
			Description:  "法院案件编号。含民事、刑事、行政、执行等各类案号。也包括仲裁案号、公证书编号。",
			Examples:     []string{"(2024)京01民初123号", "(2023)沪0115民初9876号"},
			Color:        "#8B5CF6",
			RegexPattern: `[\(（]\d{4}[\)）][京津沪渝冀豫云辽黑湘皖鲁新苏浙赣鄂桂甘晋蒙陕吉闽贵粤青藏川宁琼使领A-Za-z]{1,4}\d{0,4}[民刑行执破知赔财商劳仲][初终复再抗申裁监督撤]?\d+号`,
			Enabled:      true,
			TagTemplate:  "<案件信息[{index}].案号.编号>",
			Order:        50,
			RiskLevel:    3,
			Confidence:   0.99,
		},
		{
			ID:          "CONTRACT_NO",
			Name:        "合同/协议编号",
			Category:    CategoryQuasi,
			Description: "合同、协议、订单、发票的编号。含借款合同号、保险单号、工程合同号等。",
			Examples:    []string{"合同编号：HT-2024-001", "保单号：PICC2024001234"},
			Color:       "#64748B",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<法律文书[{index}].合同编号.代码>",
			Order:       51,
			RiskLevel:   2,
		},
		{
			ID:          "LEGAL_DOC_NO",
			Name:        "法律文书编号",
			Category:    CategoryQuasi,
			Description: "判决书编号、裁定书编号、调解书编号、执行通知书编号、律师函编号等法律文书的文号。",
			Examples:    []string{"京律函字[2024]第001号"},
			Color:       "#475569",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<法律文书[{index}].文书编号.编号>",
			Order:       51,
			RiskLevel:   2,
		},
		{
			ID:          "LEGAL_PARTY",
			Name:        "案件当事人",
			Category:    CategoryDirect,
			Description: "法律文书中的原告、被告、申请人、被申请人、上诉人、被上诉人、第三人、债权人、债务人等当事人。",
			Examples:    []string{"原告张三", "被告某公司", "被执行人"},
			Color:       "#F59E0B",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<诉讼参与人[{index}].当事人.姓名>",
			Order:       52,
			RiskLevel:   5,
		},
		{
			ID:          "LAWYER",
			Name:        "律师/代理人",
			Category:    CategoryDirect,
			Description: "委托代理人、辩护人、律师姓名及其所属律所。含法律援助律师、公司法务。",
			Examples:    []string{"北京某某律师事务所律师张三", "委托代理人李四"},
			Color:       "#A855F7",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<诉讼参与人[{index}].律师.姓名>",
			Order:       53,
			RiskLevel:   4,
		},
		{
			ID:          "JUDGE",
			Name:        "法官/书记员",
			Category:    CategoryDirect,
			Description: "审判长、审判员、书记员、人民陪审员、执行法官、法官助理姓名。",
			Examples:    []string{"审判长：张某某", "书记员：李某"},
			Color:       "#0EA5E9",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<诉讼参与人[{index}].司法人员.姓名>",
			Order:       54,
			RiskLevel:   4,
		},
		{
			ID:          "WITNESS",
			Name:        "证人/鉴定人",
			Category:    CategoryDirect,
			Description: "证人、鉴定人、评估人、翻译人员等诉讼参与人姓名。",
			Examples:    []string{"证人张某", "鉴定人：王某某"},
			Color:       "#78716C",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<诉讼参与人[{index}].证人.姓名>",
			Order:       55,
			RiskLevel:   4,
		},
		{
			ID:          "ORG",
			Name:        "机构/单位名称",
			Category:    CategoryQuasi,
			Description: "公司、组织、政府机构、法院、律所、银行、医院、学校等单位名称。含简称和全称。",
			Examples:    []string{"北京某某科技有限公司", "某某市中级人民法院"},
			Color:       "#10B981",
			UseLLM:      true,
			Enabled:     true,
			TagTemplate: "<机构信息[{index}].名称.全称>",
			Order:       56,
			RiskLevel:   3,
		},
		{
			ID:           "COMPANY_CODE",
			Name:         "统一社会信用代码",
			Category:     CategoryQuasi,
			Description:  "企业统一社会信用代码（18位）、营业执照注册号、组织机构代码等企业标识编号。",
			Examples:     []string{"91110000100000000X"},
			Color:        "#059669",
			RegexPattern: `[0-9A-Z]{18}`,
			UseLLM:       true,
			Enabled:      true,
			TagTemplate:  "<机构信息[{index}].信用代码.编号>",
			Order:        57,
			RiskLevel:    3,
			Confidence:   0.95,
		},
		{
			ID:           "URL_WEBSITE",
			Name:         "网址/链接",
			Category:     CategoryQuasi,
			Description:  "网站URL、下载链接、内网地址等。可能暴露内部系统或个人网站。",
			Examples:     []string{"https://www.example.com"},
			Color:        "#0891B2",
			RegexPattern: `https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`,
			Enabled:      true,
			TagTemplate:  "<网络信息[{index}].网址.URL>",
			Order:        58,
			RiskLevel:    2,
			Confidence:   0.95,
		},
	}
}
