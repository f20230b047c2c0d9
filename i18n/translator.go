// Package i18n localizes the short messages attached to shape mismatches.
package i18n

import "sync/atomic"

// Translator returns the message for a mismatch code.
type Translator interface {
	Message(code string) string
}

// Table is a Translator backed by a code to message map. Codes missing from
// the table are returned as is.
type Table map[string]string

func (t Table) Message(code string) string {
	if m, ok := t[code]; ok {
		return m
	}
	return code
}

var tables = map[string]Table{
	"en": {
		"invalid_type":   "invalid type",
		"invalid_enum":   "invalid enum value",
		"invalid_format": "invalid format",
		"required":       "required property missing",
		"unknown_key":    "unknown key",
	},
	"ja": {
		"invalid_type":   "型が不正です",
		"invalid_enum":   "許可されていない値です",
		"invalid_format": "形式が不正です",
		"required":       "必須プロパティが不足しています",
		"unknown_key":    "未知のキーです",
	},
}

type holder struct{ tr Translator }

var current atomic.Value

func init() { current.Store(holder{tables["en"]}) }

// SetLanguage selects a built-in table. Unknown languages fall back to "en".
func SetLanguage(lang string) {
	t, ok := tables[lang]
	if !ok {
		t = tables["en"]
	}
	current.Store(holder{t})
}

// SetTranslator installs tr; nil restores the English table.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = tables["en"]
	}
	current.Store(holder{tr})
}

// T returns the current message for code.
func T(code string) string {
	return current.Load().(holder).tr.Message(code)
}
