package phone

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	Status() int
	ResponseField(field string) (any, error)
}

// RegisterSteps registers phone validation and count steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &phoneSteps{tc: tc}

	ctx.Step(`^I validate the number "([^"]*)"$`, steps.validateNumber)
	ctx.Step(`^the number should be (valid|invalid)$`, steps.numberShouldBe)
	ctx.Step(`^rule "([^"]*)" should be (passed|failed)$`, steps.ruleShouldBe)
	ctx.Step(`^no rules should be reported$`, steps.noRulesReported)
	ctx.Step(`^I request the phone count$`, steps.requestCount)
	ctx.Step(`^the total possible valid numbers should be (\d+)$`, steps.totalShouldBe)
}

type phoneSteps struct {
	tc TestContext
}

func (s *phoneSteps) validateNumber(ctx context.Context, number string) error {
	return s.tc.POST("/api/phone/validate", map[string]string{"number": number})
}

func (s *phoneSteps) numberShouldBe(ctx context.Context, expected string) error {
	value, err := s.tc.ResponseField("isValid")
	if err != nil {
		return err
	}
	if valid, _ := value.(bool); valid != (expected == "valid") {
		return fmt.Errorf("expected number to be %s, isValid=%v", expected, value)
	}
	return nil
}

func (s *phoneSteps) ruleShouldBe(ctx context.Context, rule, expected string) error {
	value, err := s.tc.ResponseField("rules." + rule)
	if err != nil {
		return err
	}
	if passed, _ := value.(bool); passed != (expected == "passed") {
		return fmt.Errorf("expected rule %s to be %s, got %v", rule, expected, value)
	}
	return nil
}

func (s *phoneSteps) noRulesReported(ctx context.Context) error {
	if _, err := s.tc.ResponseField("rules"); err == nil {
		return fmt.Errorf("expected no rules in response")
	}
	return nil
}

func (s *phoneSteps) requestCount(ctx context.Context) error {
	return s.tc.GET("/api/phone/count")
}

func (s *phoneSteps) totalShouldBe(ctx context.Context, expected int) error {
	value, err := s.tc.ResponseField("totalPossibleValidNumbers")
	if err != nil {
		return err
	}
	if total, _ := value.(float64); int(total) != expected {
		return fmt.Errorf("expected %d possible valid numbers, got %v", expected, value)
	}
	return nil
}
