package phone

import (
	"bytes"
	"encoding/json"
)

// RuleOutcome is the result of one rule.
type RuleOutcome struct {
	Name   string
	Passed bool
}

// RuleResults holds one outcome per rule in evaluation order. It marshals to a
// JSON object whose keys keep that order.
type RuleResults []RuleOutcome

// Get returns the outcome of the named rule.
func (r RuleResults) Get(name string) (passed, found bool) {
	for _, o := range r {
		if o.Name == name {
			return o.Passed, true
		}
	}
	return false, false
}

// Map returns the outcomes keyed by rule name.
func (r RuleResults) Map() map[string]bool {
	m := make(map[string]bool, len(r))
	for _, o := range r {
		m[o.Name] = o.Passed
	}
	return m
}

func (r RuleResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(o.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if o.Passed {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Verdict is the outcome of evaluating a candidate. A malformed candidate has
// no Number and no Rules.
type Verdict struct {
	Number  string      `json:"number,omitempty"`
	Rules   RuleResults `json:"rules,omitempty"`
	IsValid bool        `json:"isValid"`
}

// Malformed reports whether the candidate failed the format check.
func (v Verdict) Malformed() bool {
	return v.Rules == nil
}

// Evaluate checks input against the rule set. Malformed input yields a
// negative verdict without rule detail; it is never an error.
func Evaluate(input string) Verdict {
	d, ok := ParseDigits(input)
	if !ok {
		return Verdict{IsValid: false}
	}

	results := make(RuleResults, len(rules))
	valid := true
	for i, rule := range rules {
		passed := rule.Check(d)
		results[i] = RuleOutcome{Name: rule.Name, Passed: passed}
		valid = valid && passed
	}

	return Verdict{
		Number:  input,
		Rules:   results,
		IsValid: valid,
	}
}
