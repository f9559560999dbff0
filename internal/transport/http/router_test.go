package httptransport_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	audithandler "phonereg/internal/audit/handler"
	"phonereg/internal/phone"
	phonehandler "phonereg/internal/phone/handler"
	reghandler "phonereg/internal/registration/handler"
	regservice "phonereg/internal/registration/service"
	regstore "phonereg/internal/registration/store"
	httptransport "phonereg/internal/transport/http"
	"phonereg/pkg/platform/audit/publisher"
	auditmemory "phonereg/pkg/platform/audit/store/memory"
	"phonereg/pkg/testutil"
)

// RouterSuite drives the assembled router with in-memory collaborators.
type RouterSuite struct {
	suite.Suite
	router  http.Handler
	audit   *auditmemory.InMemoryStore
	denials *publisher.Publisher
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	phones := phone.NewService()
	store := regstore.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()
	accepted := publisher.NewPublisher(s.audit)
	s.denials = publisher.NewPublisher(s.audit, publisher.WithAsyncBuffer(16))

	registrations, err := regservice.New(store, phones,
		regservice.WithAuditPublisher(accepted),
		regservice.WithDenialPublisher(s.denials),
	)
	s.Require().NoError(err)

	s.router = httptransport.NewRouter(httptransport.RouterDeps{
		API: []httptransport.RouteRegistrar{
			phonehandler.New(phones, registrations, nil),
			reghandler.New(registrations, nil),
		},
		Internal: []httptransport.RouteRegistrar{
			audithandler.New(accepted, nil),
		},
	})
}

func (s *RouterSuite) TearDownTest() {
	s.denials.Close()
}

func (s *RouterSuite) register(t *testing.T, name, email, number string) (int, string) {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/registration",
		reghandler.RegisterRequest{Name: name, Email: email, Phone: number})
	rr := testutil.DoRequest(s.router, req)
	resp := testutil.DecodeJSON[testutil.StatusEnvelope](t, rr)
	return rr.Code, resp.Message
}

func (s *RouterSuite) assertRegister(t *testing.T, wantStatus int, wantMessage, name, email, number string) {
	t.Helper()
	status, message := s.register(t, name, email, number)
	s.Equal(wantStatus, status, number)
	s.Equal(wantMessage, message, number)
}

func (s *RouterSuite) TestHealth() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))

	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"status":"healthy"}`, rr.Body.String())
}

func (s *RouterSuite) TestValidate() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/phone/validate", `{"number":"100000"}`)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	s.Equal(`{"number":"100000","rules":{"hasNonZeroDigit":true,"sumFirstEqualsLast":false,"sumOddEqualsEven":false},"isValid":false}`+"\n", rr.Body.String())
}

func (s *RouterSuite) TestRegistrationFlow() {
	testutil.Given(s.T(), "an empty registry", func(t *testing.T) {
		testutil.When(t, "registrations are submitted", func(t *testing.T) {
			s.assertRegister(t, http.StatusCreated, "Registration successful", "Ada", "ada@example.com", "123321")
			s.assertRegister(t, http.StatusCreated, "Registration successful", "Bob", "bob@example.com", "550055")
			s.assertRegister(t, http.StatusConflict, "Phone already registered", "Eve", "eve@example.com", "123321")
			s.assertRegister(t, http.StatusUnprocessableEntity, "Invalid phone number", "Eve", "eve@example.com", "123456")
			s.assertRegister(t, http.StatusBadRequest, "Name, email and phone are required", "", "eve@example.com", "111111")
		})

		testutil.Then(t, "the listing is newest first", func(t *testing.T) {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/api/registrations"))
			testutil.AssertStatusOK(t, rr)
			regs := testutil.DecodeJSON[[]reghandler.RegistrationResponse](t, rr)
			s.Require().Len(regs, 2)
			phones := []string{regs[0].Phone, regs[1].Phone}
			s.ElementsMatch([]string{"123321", "550055"}, phones)
			s.False(regs[0].CreatedAt.Before(regs[1].CreatedAt))
		})

		testutil.And(t, "the count reports distinct registered phones", func(t *testing.T) {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/api/phone/count"))
			testutil.AssertStatusOK(t, rr)
			s.JSONEq(`{"totalPossibleValidNumbers":6699,"registeredValidNumbers":2}`, rr.Body.String())
		})

		testutil.And(t, "every attempt is audited", func(t *testing.T) {
			// flush buffered denials
			s.denials.Close()

			events, err := s.audit.ListRecent(context.Background(), 0)
			s.Require().NoError(err)
			s.Len(events, 5)

			rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/internal/audit/events?limit=10"))
			testutil.AssertStatusOK(t, rr)
			listed := testutil.DecodeJSON[[]audithandler.EventResponse](t, rr)
			s.Len(listed, 5)

			actions := map[string]int{}
			for _, e := range listed {
				actions[e.Action]++
			}
			s.Equal(map[string]int{"registration_accepted": 2, "registration_denied": 3}, actions)
		})
	})
}

func (s *RouterSuite) TestCORSPreflight() {
	req := testutil.NewRequest(s.T(), http.MethodOptions, "/api/phone/validate")
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	s.Equal("*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestRequestIDEchoed() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/health")
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.DoRequest(s.router, req)

	s.Equal("abc-123", rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestUnknownRoute() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/nope"))

	testutil.AssertError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestMetricsEndpoint() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))

	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), "go_goroutines")
}

func TestInternalRoutesAbsentWithoutHandlers(t *testing.T) {
	router := httptransport.NewRouter(httptransport.RouterDeps{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/internal/audit/events"))

	testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
}

func TestHealthReportsFailingDependency(t *testing.T) {
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Checks: []httptransport.HealthCheck{
			{Name: "postgres", Check: func(context.Context) error { return nil }},
			{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
		},
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONField(t, rr, "status", "unhealthy")
}
