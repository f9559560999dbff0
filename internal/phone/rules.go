package phone

// Rule names, in evaluation order.
const (
	RuleHasNonZeroDigit    = "hasNonZeroDigit"
	RuleSumFirstEqualsLast = "sumFirstEqualsLast"
	RuleSumOddEqualsEven   = "sumOddEqualsEven"
)

// Rule is one independent predicate over a candidate's digits.
type Rule struct {
	Name  string
	Check func(Digits) bool
}

// rules is the fixed rule set. Order only affects reporting.
var rules = []Rule{
	{Name: RuleHasNonZeroDigit, Check: hasNonZeroDigit},
	{Name: RuleSumFirstEqualsLast, Check: sumFirstEqualsLast},
	{Name: RuleSumOddEqualsEven, Check: sumOddEqualsEven},
}

// Rules returns a copy of the rule set in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// hasNonZeroDigit rejects the all-zero sequence.
func hasNonZeroDigit(d Digits) bool {
	for _, x := range d {
		if x != 0 {
			return true
		}
	}
	return false
}

// sumFirstEqualsLast holds when both halves have the same digit sum.
func sumFirstEqualsLast(d Digits) bool {
	return d[0]+d[1]+d[2] == d[3]+d[4]+d[5]
}

// sumOddEqualsEven compares positions 0,2,4 against positions 1,3,5.
func sumOddEqualsEven(d Digits) bool {
	return d[0]+d[2]+d[4] == d[1]+d[3]+d[5]
}
