package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "missing_field":
			msg = "必須フィールド {field} が指定されていません"
		case "unknown_field":
			msg = "未知のフィールド {field} です"
		case "frozen":
			msg = "凍結されたオブジェクトは変更できません"
		case "ambiguous_nesting":
			msg = "ネスト型 {type} の定義が曖昧です"
		case "forbidden_write":
			msg = "フィールド {field} への書き込みは許可されていません"
		case "default_failed":
			msg = "フィールド {field} の既定値の計算に失敗しました"
		case "invalid_declaration":
			msg = "宣言が不正です"
		}
	default: // "en"
		switch code {
		case "missing_field":
			msg = "missing required field {field}"
		case "unknown_field":
			msg = "unknown field {field}"
		case "frozen":
			msg = "can't modify frozen record"
		case "ambiguous_nesting":
			msg = "ambiguous nested type {type}"
		case "forbidden_write":
			msg = "write to field {field} is not permitted"
		case "default_failed":
			msg = "computing default for {field} failed"
		case "invalid_declaration":
			msg = "invalid declaration"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand substitutes {key} placeholders; unknown placeholders are dropped
// together with their leading space.
func expand(msg string, data map[string]string) string {
	for {
		i := strings.IndexByte(msg, '{')
		if i < 0 {
			return msg
		}
		j := strings.IndexByte(msg[i:], '}')
		if j < 0 {
			return msg
		}
		key := msg[i+1 : i+j]
		val, ok := data[key]
		if !ok || val == "" {
			start := i
			if start > 0 && msg[start-1] == ' ' {
				start--
			}
			msg = msg[:start] + msg[i+j+1:]
			continue
		}
		msg = msg[:i] + val + msg[i+j+1:]
	}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
