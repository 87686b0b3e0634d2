package testutils

import "strings"

// MultiByteString строка из runes символов по 4 байта. Проходит проверку длины в рунах,
// но не проходит проверку max_bytes при runes*4 > лимита.
func MultiByteString(runes int) string {
	return strings.Repeat("🎬", runes)
}
