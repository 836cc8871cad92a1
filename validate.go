package cardfmt

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// Messages reported by Validate.
const (
	MsgUnmatchedBold   = "Unmatched asterisk for bold formatting"
	MsgUnmatchedItalic = "Unmatched dollar sign for italic formatting"
	MsgUnmatchedCost   = "Unmatched caret for cost formatting"
)

var delimiterChecks = []struct {
	delim byte
	msg   string
}{
	{'*', MsgUnmatchedBold},
	{'$', MsgUnmatchedItalic},
	{'^', MsgUnmatchedCost},
}

// Validate reports one message for each inline delimiter that occurs an odd
// number of times in text. It only counts; it does not locate the stray
// delimiter or check pairing order. A nil result means balanced.
func Validate(text string) []string {
	var problems []string
	for _, check := range delimiterChecks {
		if strings.Count(text, string(check.delim))%2 != 0 {
			problems = append(problems, check.msg)
		}
	}
	return problems
}

// ValidateInput returns an error if the input is not valid UTF-8 or appears binary.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var total, control int
	for _, b := range src {
		total++
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 {
		return true
	}
	if b == 0x7F {
		return true
	}
	return false
}
