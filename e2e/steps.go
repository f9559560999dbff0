package e2e

import (
	"github.com/cucumber/godog"

	"phonereg/e2e/steps/common"
	"phonereg/e2e/steps/phone"
	"phonereg/e2e/steps/registration"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// generic requests and assertions
	common.RegisterSteps(ctx, tc)

	phone.RegisterSteps(ctx, tc)
	registration.RegisterSteps(ctx, tc)
}
