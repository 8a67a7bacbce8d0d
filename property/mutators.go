package property

import (
	"math/rand"
	"strconv"
	"strings"

	"odfuzzer/util"
)

// String mutators operate on the characters between the surrounding quotes,
// number mutators on the digits; both keep the literal syntactically valid.

// MutateString applies one random string mutation to a quoted literal.
func MutateString(r *rand.Rand, value string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(value, "'"), "'")
	switch r.Intn(4) {
	case 0: // flip one character
		if inner == "" {
			inner = util.Letters(r, 1)
			break
		}
		i := r.Intn(len(inner))
		inner = inner[:i] + util.AlphaNum(r, 1) + inner[i+1:]
	case 1: // drop one character
		if inner == "" {
			break
		}
		i := r.Intn(len(inner))
		inner = inner[:i] + inner[i+1:]
	case 2: // duplicate one character
		if inner == "" {
			break
		}
		i := r.Intn(len(inner))
		inner = inner[:i+1] + inner[i:]
	default: // swap case of the whole literal
		if strings.ToUpper(inner) == inner {
			inner = strings.ToLower(inner)
		} else {
			inner = strings.ToUpper(inner)
		}
	}
	return "'" + inner + "'"
}

// MutateNumber applies one random numeric mutation, preserving any literal
// suffix (L, m, f).
func MutateNumber(r *rand.Rand, value string) string {
	suffix := ""
	digits := value
	if digits != "" {
		last := digits[len(digits)-1]
		if last == 'L' || last == 'm' || last == 'f' {
			suffix = string(last)
			digits = digits[:len(digits)-1]
		}
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return value
	}
	switch r.Intn(3) {
	case 0:
		n++
	case 1:
		n--
	default:
		n = -n
	}
	if strings.ContainsRune(digits, '.') {
		return strconv.FormatFloat(n, 'f', -1, 64) + suffix
	}
	return strconv.FormatInt(int64(n), 10) + suffix
}

// MutateGuid replaces one hexadecimal digit of a guid'...' literal.
func MutateGuid(r *rand.Rand, value string) string {
	const prefix = "guid'"
	if !strings.HasPrefix(value, prefix) || !strings.HasSuffix(value, "'") {
		return value
	}
	inner := value[len(prefix) : len(value)-1]
	pos := r.Intn(len(inner))
	if inner[pos] == '-' {
		pos = (pos + 1) % len(inner)
	}
	return prefix + inner[:pos] + util.Hex(r, 1) + inner[pos+1:] + "'"
}

// MutateBoolean flips the literal.
func MutateBoolean(_ *rand.Rand, value string) string {
	if value == "true" {
		return "false"
	}
	return "true"
}
