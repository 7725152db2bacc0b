package utils

import "strings"

// спец-пробелы из выгрузок (NBSP, узкий NBSP, thin space) → обычный пробел
var spaces = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ")

// Cell нормализует значение ячейки: пустое/из одних пробелов → "".
// Непустые значения возвращаются как есть (кроме спец-пробелов).
func Cell(s string) string {
	if s == "" {
		return ""
	}
	s = spaces.Replace(s)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// IsBlank: ячейка пустая после нормализации.
func IsBlank(s string) bool { return Cell(s) == "" }
