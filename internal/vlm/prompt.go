package vlm

import (
	"fmt"
	"strings"
)

// buildPrompt renders the detection instruction from the enabled region
// types. The model answers in a 1000-unit normalized coordinate frame;
// responses in other frames are reconciled downstream.
func buildPrompt(types []DetectType) string {
	var rules []string
	for i, t := range types {
		rule := fmt.Sprintf("%d. 检测所有【%s】", i+1, t.Name)
		if t.Description != "" {
			rule += "：" + t.Description
		}
		if t.Examples != "" {
			rule += "，如：" + t.Examples
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		rules = []string{
			"1. 检测所有【人名/昵称】：如曹总、小王、张三",
			"2. 检测所有【机构名】：如某某公司、XX研究所",
			"3. 检测所有【电话号码】：11位手机号",
			"4. 检测所有【身份证号】：18位数字",
		}
	}

	return fmt.Sprintf(`请分析这张图片并定位所有敏感信息区域。

检测规则清单：
%s

请输出一个 JSON 对象，包含 "objects" 键。
每个检测到的敏感区域必须包含:
1. "type": 敏感信息类型（如"人名"、"公章"等）
2. "text": 识别到的具体文字内容（非文字区域可为空或描述）
3. "box_2d": [xmin, ymin, xmax, ymax] 格式的整数列表

坐标基于归一化坐标系（图像宽高均为 1000 单位，左上角为 [0, 0]，右下角为 [1000, 1000]）。

泛化识别要求：
1) 不要只依赖显式关键词（如“账号/开户行/身份证/电话”等），也要识别未标注但符合语义或格式的敏感信息。
2) 识别结构化信息：人名/组织机构/地址/联系方式/证件号/银行卡号/账号/日期/金额等。
3) 识别非文字敏感区域：签名、手写、印章、公章、指纹、证件照、二维码、条形码。
4) 同类信息可能多处出现，需全部输出。
5) 边框要尽量贴合目标内容本身，避免把整段、整页或大块空白一起框进去。

重要：请仔细扫描图片中的每一行文字，宁可多检测也不要漏掉。
只返回 JSON 格式，不要使用 Markdown 代码块或其他文字。`, strings.Join(rules, "\n"))
}
