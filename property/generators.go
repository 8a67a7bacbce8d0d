package property

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"odfuzzer/util"
)

// DefaultMaxStringLength caps generated string literals when the schema does
// not declare a maximum length.
const DefaultMaxStringLength = 100

const int32Max = 2147483646

// GenerateString produces a quoted OData string literal of random length up
// to maxLength.
func GenerateString(r *rand.Rand, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxStringLength
	}
	return "'" + util.AlphaNum(r, r.Intn(maxLength)+1) + "'"
}

// GenerateInt16 produces an Edm.Int16 literal.
func GenerateInt16(r *rand.Rand) string {
	return fmt.Sprintf("%d", r.Intn(math.MaxUint16+1)-math.MaxInt16-1)
}

// GenerateInt32 produces an Edm.Int32 literal.
func GenerateInt32(r *rand.Rand) string {
	return fmt.Sprintf("%d", r.Int63n(2*int32Max+1)-int32Max)
}

// GenerateInt64 produces an Edm.Int64 literal with the mandatory L suffix.
func GenerateInt64(r *rand.Rand) string {
	return fmt.Sprintf("%dL", r.Int63()-r.Int63())
}

// GenerateByte produces an Edm.Byte literal (0..255).
func GenerateByte(r *rand.Rand) string {
	return fmt.Sprintf("%d", r.Intn(256))
}

// GenerateSByte produces an Edm.SByte literal (-128..127).
func GenerateSByte(r *rand.Rand) string {
	return fmt.Sprintf("%d", r.Intn(256)-128)
}

// GenerateSingle produces an Edm.Single literal with the f suffix.
func GenerateSingle(r *rand.Rand) string {
	return fmt.Sprintf("%.2ff", (r.Float64()-0.5)*float64(r.Intn(1<<20)))
}

// GenerateDecimal produces an Edm.Decimal literal with the m suffix.
func GenerateDecimal(r *rand.Rand) string {
	return fmt.Sprintf("%d.%dm", r.Intn(1<<26), r.Intn(1<<10))
}

// GenerateBoolean produces true or false.
func GenerateBoolean(r *rand.Rand) string {
	if r.Intn(2) == 0 {
		return "true"
	}
	return "false"
}

// GenerateGuid produces a guid'...' literal.
func GenerateGuid(r *rand.Rand) string {
	return fmt.Sprintf("guid'%s-%s-%s-%s-%s'",
		util.Hex(r, 8), util.Hex(r, 4), util.Hex(r, 4), util.Hex(r, 4), util.Hex(r, 12))
}

// GenerateDateTime produces a datetime'...' literal between the epoch and
// now.
func GenerateDateTime(r *rand.Rand) string {
	t := randomTime(r)
	return "datetime'" + t.Format("2006-01-02T15:04:05") + "'"
}

// GenerateDateTimeOffset produces a datetimeoffset'...' literal in UTC.
func GenerateDateTimeOffset(r *rand.Rand) string {
	t := randomTime(r)
	return "datetimeoffset'" + t.Format("2006-01-02T15:04:05") + "Z'"
}

// GenerateTime produces a time'...' duration literal.
func GenerateTime(r *rand.Rand) string {
	return fmt.Sprintf("time'PT%dH%dM%dS'", r.Intn(24), r.Intn(60), r.Intn(60))
}

// GenerateBinary produces a binary'...' literal with an even number of hex
// digits.
func GenerateBinary(r *rand.Rand) string {
	return "binary'" + util.Hex(r, (r.Intn(8)+1)*2) + "'"
}

func randomTime(r *rand.Rand) time.Time {
	return time.Unix(r.Int63n(time.Now().Unix()), 0).UTC()
}
