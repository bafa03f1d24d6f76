package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

type byteClass uint8

const (
	classIdentStart byteClass = 1 << iota
	classDigit
	classHex
	classOperator
)

// asciiClass: классы ASCII-байт, остальное решается по рунам.
var asciiClass = func() (t [utf8.RuneSelf]byteClass) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= classIdentStart
		t[b-'a'+'A'] |= classIdentStart
	}
	t['_'] |= classIdentStart
	for b := '0'; b <= '9'; b++ {
		t[b] |= classDigit | classHex
	}
	for _, b := range "abcdefABCDEF" {
		t[b] |= classHex
	}
	for _, b := range "/=-+!*%<>&|^~?" {
		t[b] |= classOperator
	}
	return t
}()

func is(b byte, class byteClass) bool {
	return b < utf8.RuneSelf && asciiClass[b]&class != 0
}

func isIdentStartByte(b byte) bool    { return is(b, classIdentStart) }
func isIdentContinueByte(b byte) bool { return is(b, classIdentStart|classDigit) }
func isDec(b byte) bool               { return is(b, classDigit) }
func isHex(b byte) bool               { return is(b, classHex) }
func isOperatorByte(b byte) bool      { return is(b, classOperator) }

// Swift разрешает в идентификаторах буквы и символы-эмодзи (So),
// в продолжении ещё цифры и комбинирующие знаки (Mn).
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.So, r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// isPostfixContext: '?' или '!' вплотную после операнда это постфикс.
func isPostfixContext(prev byte) bool {
	switch prev {
	case ')', ']', '>', '`':
		return true
	}
	return prev >= utf8.RuneSelf || isIdentContinueByte(prev)
}
