package i18n

import "strings"

// Bucket is a language group with its own message catalog.
type Bucket int

const (
	Default Bucket = iota
	Chinese
)

func (b Bucket) String() string {
	if b == Chinese {
		return "zh"
	}
	return "default"
}

type rule struct {
	match  func(tag string) bool
	bucket Bucket
}

// Matching is case-sensitive: "zh-CN", "en_HK" and "zh" are Chinese, "ZH" is not.
var rules = []rule{
	{func(tag string) bool { return strings.HasPrefix(tag, "zh") }, Chinese},
	{func(tag string) bool { return strings.Contains(tag, "CN") }, Chinese},
	{func(tag string) bool { return strings.Contains(tag, "TW") }, Chinese},
	{func(tag string) bool { return strings.Contains(tag, "HK") }, Chinese},
}

// Classify maps a language tag or locale value to its bucket.
func Classify(tag string) Bucket {
	for _, r := range rules {
		if r.match(tag) {
			return r.bucket
		}
	}
	return Default
}
