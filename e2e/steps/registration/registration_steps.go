package registration

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	Status() int
	ResponseField(field string) (any, error)
	ResponseArray() ([]map[string]any, error)
}

// RegisterSteps registers registration steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	ctx.Step(`^an unregistered valid phone$`, steps.pickUnregisteredPhone)
	ctx.Step(`^I note the registered valid numbers$`, steps.noteRegisteredCount)
	ctx.Step(`^I register "([^"]*)" with email "([^"]*)" and that phone$`, steps.registerWithPhone)
	ctx.Step(`^I register "([^"]*)" with email "([^"]*)" and phone "([^"]*)"$`, steps.register)
	ctx.Step(`^the registration should be (accepted|denied) with message "([^"]*)"$`, steps.registrationShouldBe)
	ctx.Step(`^the registrations list should contain that phone$`, steps.listShouldContainPhone)
	ctx.Step(`^the registered valid numbers should have increased by (\d+)$`, steps.registeredCountIncreasedBy)
}

type registrationSteps struct {
	tc        TestContext
	phone     string
	baseCount int
}

// pickUnregisteredPhone chooses a mirrored number (abccba). Mirrored numbers
// satisfy both sum rules, so any of them except 000000 is valid.
func (s *registrationSteps) pickUnregisteredPhone(ctx context.Context) error {
	taken, err := s.registeredPhones()
	if err != nil {
		return err
	}
	start := rand.IntN(999) + 1
	for i := range 999 {
		n := (start+i-1)%999 + 1
		half := fmt.Sprintf("%03d", n)
		candidate := half + string([]byte{half[2], half[1], half[0]})
		if !taken[candidate] {
			s.phone = candidate
			return nil
		}
	}
	return fmt.Errorf("every mirrored phone is already registered")
}

func (s *registrationSteps) registeredPhones() (map[string]bool, error) {
	if err := s.tc.GET("/api/registrations"); err != nil {
		return nil, err
	}
	if s.tc.Status() != http.StatusOK {
		return nil, fmt.Errorf("list registrations returned %d", s.tc.Status())
	}
	items, err := s.tc.ResponseArray()
	if err != nil {
		return nil, err
	}
	phones := make(map[string]bool, len(items))
	for _, item := range items {
		if p, ok := item["phone"].(string); ok {
			phones[p] = true
		}
	}
	return phones, nil
}

func (s *registrationSteps) noteRegisteredCount(ctx context.Context) error {
	n, err := s.registeredCount()
	if err != nil {
		return err
	}
	s.baseCount = n
	return nil
}

func (s *registrationSteps) registeredCount() (int, error) {
	if err := s.tc.GET("/api/phone/count"); err != nil {
		return 0, err
	}
	value, err := s.tc.ResponseField("registeredValidNumbers")
	if err != nil {
		return 0, err
	}
	n, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("registeredValidNumbers is not a number: %v", value)
	}
	return int(n), nil
}

func (s *registrationSteps) registerWithPhone(ctx context.Context, name, email string) error {
	if s.phone == "" {
		return fmt.Errorf("no phone chosen; use \"an unregistered valid phone\" first")
	}
	return s.register(ctx, name, email, s.phone)
}

func (s *registrationSteps) register(ctx context.Context, name, email, phone string) error {
	return s.tc.POST("/api/registration", map[string]string{
		"name":  name,
		"email": email,
		"phone": phone,
	})
}

func (s *registrationSteps) registrationShouldBe(ctx context.Context, status, message string) error {
	gotStatus, err := s.tc.ResponseField("status")
	if err != nil {
		return err
	}
	gotMessage, err := s.tc.ResponseField("message")
	if err != nil {
		return err
	}
	if gotStatus != status || gotMessage != message {
		return fmt.Errorf("expected %s %q, got %v %q", status, message, gotStatus, gotMessage)
	}
	return nil
}

func (s *registrationSteps) listShouldContainPhone(ctx context.Context) error {
	phones, err := s.registeredPhones()
	if err != nil {
		return err
	}
	if !phones[s.phone] {
		return fmt.Errorf("phone %s not found in registrations", s.phone)
	}
	return nil
}

func (s *registrationSteps) registeredCountIncreasedBy(ctx context.Context, delta int) error {
	n, err := s.registeredCount()
	if err != nil {
		return err
	}
	if n-s.baseCount != delta {
		return fmt.Errorf("expected registered count to grow by %d, went from %d to %d", delta, s.baseCount, n)
	}
	return nil
}
