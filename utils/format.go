package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount prints n with the digit grouping of lang, English if lang is
// not recognized.
func FormatCount(lang string, n int) string {
	tag, err := language.Parse(lang)
	if nil != err {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}
