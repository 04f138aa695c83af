package toml

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseInteger decodes a raw integer lexeme (as classified by the
// scanner) honoring the 0x/0o/0b base prefixes and underscore digit
// separators.
func parseInteger(b []byte) (int64, error) {
	if len(b) > 2 && b[0] == '0' {
		switch b[1] {
		case 'x':
			return parseIntHex(b)
		case 'o':
			return parseIntOct(b)
		case 'b':
			return parseIntBin(b)
		}
	}
	return parseIntDec(b)
}

// parseFloat decodes a raw float lexeme, recognizing the literal forms
// inf, -inf, +inf, nan, -nan, +nan in addition to IEEE 754 decimal and
// exponent notation.
func parseFloat(b []byte) (float64, error) {
	switch string(b) {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}

	tok := string(b)
	if err := numberContainsInvalidUnderscore(tok); err != nil {
		return 0, newDecodeError(b, "%s", err)
	}
	cleaned := cleanupNumberToken(tok)
	if len(cleaned) == 0 {
		return 0, newDecodeError(b, "empty float literal")
	}
	if cleaned[0] == '.' {
		return 0, newDecodeError(b, "float cannot start with a dot")
	}
	if cleaned[len(cleaned)-1] == '.' {
		return 0, newDecodeError(b, "float cannot end with a dot")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, newDecodeError(b, "couldn't parse float: %s", err)
	}
	return f, nil
}

func parseIntHex(b []byte) (int64, error) {
	return parseBasedInt(b, 16, hexNumberContainsInvalidUnderscore)
}

func parseIntOct(b []byte) (int64, error) {
	return parseBasedInt(b, 8, numberContainsInvalidUnderscore)
}

func parseIntBin(b []byte) (int64, error) {
	return parseBasedInt(b, 2, numberContainsInvalidUnderscore)
}

func parseBasedInt(b []byte, base int, checkUnderscore func(string) error) (int64, error) {
	if err := checkUnderscore(string(b)); err != nil {
		return 0, newDecodeError(b, "%s", err)
	}
	cleaned := cleanupNumberToken(string(b))
	i, err := strconv.ParseInt(cleaned[2:], base, 64)
	if err != nil {
		return 0, wrapIntParseError(b, err)
	}
	return i, nil
}

func parseIntDec(b []byte) (int64, error) {
	if err := numberContainsInvalidUnderscore(string(b)); err != nil {
		return 0, newDecodeError(b, "%s", err)
	}
	cleaned := cleanupNumberToken(string(b))
	i, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, wrapIntParseError(b, err)
	}
	return i, nil
}

func wrapIntParseError(highlight []byte, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return newKindError(Overflow, highlight, "integer overflows 64 bits: %s", err)
	}
	return newDecodeError(highlight, "couldn't parse integer: %s", err)
}

func numberContainsInvalidUnderscore(value string) error {
	hasBefore := false
	for idx, r := range value {
		if r == '_' {
			if !hasBefore || idx+1 >= len(value) {
				return fmt.Errorf("invalid use of '_' in number")
			}
		}
		hasBefore = isDigitRune(r)
	}
	return nil
}

func hexNumberContainsInvalidUnderscore(value string) error {
	hasBefore := false
	for idx, r := range value {
		if r == '_' {
			if !hasBefore || idx+1 >= len(value) {
				return fmt.Errorf("invalid use of '_' in hex number")
			}
		}
		hasBefore = isHexDigitRune(r)
	}
	return nil
}

func cleanupNumberToken(value string) string {
	return strings.ReplaceAll(value, "_", "")
}

func isHexDigitRune(r rune) bool {
	return isDigitRune(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}
