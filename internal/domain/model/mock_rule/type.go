package model

// RuleFileExt is the extension of rule files picked up by the loader.
const RuleFileExt = ".tail"

// 规则文件格式标记
const (
	BlockSeparator        = "--"
	HeaderSeparator       = ": "
	Base64BodyPrefix      = "base64:"
	DirectiveNetworkDelay = "#networkDelay"
)

// minRuleLines is method pattern + URL pattern + status code.
const minRuleLines = 3
