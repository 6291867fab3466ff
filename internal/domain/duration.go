package domain

import "unicode"

// maxParsedMinutes bounds a single parse result. Anything above it cannot be
// a real study log, and the bound keeps long digit runs from wrapping the
// accumulator negative.
const maxParsedMinutes = 1_000_000

// ParseDuration scans free text like "2hr 30m" for <number><unit> tokens and
// returns the total in minutes. Units: h/hr/hrs for hours, m/min/minute/minutes
// for minutes, case-insensitive. Tokens may repeat, run together ("2h30m") or
// sit between unrelated words. A bare number without a unit never matches.
// Returns ErrInvalidDuration when nothing matched, the total is zero, or a
// value is absurdly large. The result is always in [1, maxParsedMinutes].
func ParseDuration(text string) (int, error) {
	runes := []rune(text)
	total := 0
	matched := false

	i := 0
	for i < len(runes) {
		if !unicode.IsDigit(runes[i]) {
			i++
			continue
		}

		value := 0
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			// Stop accumulating once past the cap; the token fails below.
			if value <= maxParsedMinutes {
				value = value*10 + int(runes[i]-'0')
			}
			i++
		}

		start := i
		for i < len(runes) && unicode.IsLetter(runes[i]) {
			i++
		}

		switch toLowerASCII(runes[start:i]) {
		case "h", "hr", "hrs":
			value *= 60
		case "m", "min", "minute", "minutes":
		default:
			continue
		}

		if value > maxParsedMinutes-total {
			return 0, ErrInvalidDuration
		}
		total += value
		matched = true
	}

	if !matched || total == 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

func toLowerASCII(runes []rune) string {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out[i] = r
	}
	return string(out)
}
