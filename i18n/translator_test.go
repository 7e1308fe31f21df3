package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	assert.Equal(t, "missing required field foo", T("missing_field", map[string]string{"field": "foo"}))

	SetLanguage("ja")
	msg := T("missing_field", map[string]string{"field": "foo"})
	assert.NotEqual(t, "missing required field foo", msg)
	assert.Contains(t, msg, "foo")

	// reset to en
	SetLanguage("en")
}

func TestTranslator_MissingPlaceholderIsDropped(t *testing.T) {
	assert.Equal(t, "unknown field", T("unknown_field", nil))
	assert.Equal(t, "ambiguous nested type Thing", T("ambiguous_nesting", map[string]string{"type": "Thing"}))
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	assert.Equal(t, "X:frozen", T("frozen", nil))
}
