package phone

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func digitString(t *rapid.T) (string, Digits) {
	var d Digits
	var b strings.Builder
	for i := range d {
		d[i] = rapid.IntRange(0, 9).Draw(t, "digit")
		b.WriteByte(byte('0' + d[i]))
	}
	return b.String(), d
}

func TestEvaluateProperties(t *testing.T) {
	t.Run("well-formed verdict matches the arithmetic", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			s, d := digitString(t)
			v := Evaluate(s)

			nonZero := d != Digits{}
			halves := d[0]+d[1]+d[2] == d[3]+d[4]+d[5]
			alternate := d[0]+d[2]+d[4] == d[1]+d[3]+d[5]

			got := v.Rules.Map()
			if got[RuleHasNonZeroDigit] != nonZero ||
				got[RuleSumFirstEqualsLast] != halves ||
				got[RuleSumOddEqualsEven] != alternate {
				t.Fatalf("%s: rules %v disagree with digits %v", s, got, d)
			}
			if v.IsValid != (nonZero && halves && alternate) {
				t.Fatalf("%s: isValid=%v", s, v.IsValid)
			}
		})
	})

	t.Run("any other length is malformed", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			n := rapid.IntRange(0, 32).Filter(func(n int) bool { return n != Width }).Draw(t, "len")
			s := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789")), n, n, -1).Draw(t, "input")

			v := Evaluate(s)
			if v.IsValid || !v.Malformed() {
				t.Fatalf("%q of length %d should be malformed", s, len(s))
			}
		})
	})

	t.Run("reversal preserves validity", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			s, _ := digitString(t)
			r := []byte(s)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			if Evaluate(s).IsValid != Evaluate(string(r)).IsValid {
				t.Fatalf("%s and its reverse %s disagree", s, r)
			}
		})
	})
}
