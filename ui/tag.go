package ui

import (
	"regexp"
	"strings"
)

const REGEX_TAGS = `<(/?\w+)((?:\s+\w+(?::(?:[^>\s]+|"[^"]*"|'[^']*'))?\s*)*)>`
const REGEX_SINGLE_TAG = `(/?\w+)(?::(".*?"|'.*?'|[^>\s]+))`

var (
	tagRe   = regexp.MustCompile(REGEX_TAGS)
	paramRe = regexp.MustCompile(REGEX_SINGLE_TAG)
)

func ParseTag(tag string) (string, map[string]string) {
	tagName := ""
	tagParams := make(map[string]string)

	tagMatch := tagRe.FindStringSubmatch(tag)
	if len(tagMatch) > 0 {
		tagName = tagMatch[1]
		params := tagMatch[2]
		if params != "" {
			for _, paramMatch := range paramRe.FindAllStringSubmatch(params, -1) {
				paramName := paramMatch[1]
				paramValue := "true" // Default value for flag-like parameters

				if len(paramMatch) > 2 && paramMatch[2] != "" {
					paramValue = paramMatch[2]
					if (strings.HasPrefix(paramValue, `"`) && strings.HasSuffix(paramValue, `"`)) ||
						(strings.HasPrefix(paramValue, `'`) && strings.HasSuffix(paramValue, `'`)) {
						// Remove quotes from the value
						paramValue = paramValue[1 : len(paramValue)-1]
					}
				}

				tagParams[paramName] = paramValue
			}
		}
	}

	return tagName, tagParams
}
