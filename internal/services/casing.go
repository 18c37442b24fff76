package services

import (
	"strings"
	"unicode"
)

// ToSnakeCase turns a camelCase field name into its column name. An underscore
// goes between a lowercase letter and a directly following uppercase letter or
// digit, then the whole key is lowercased: "line1" -> "line_1",
// "paymentInfoId" -> "payment_info_id". Runs of capitals are not split.
func ToSnakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)

	var prev rune
	for i, r := range key {
		if i > 0 && unicode.IsLower(prev) && (unicode.IsUpper(r) || unicode.IsDigit(r)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// ConvertFields returns the same values keyed by column name.
func ConvertFields(fields map[string]any) map[string]any {
	converted := make(map[string]any, len(fields))
	for key, value := range fields {
		converted[ToSnakeCase(key)] = value
	}
	return converted
}
