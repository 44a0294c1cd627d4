package steps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"firmgen-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

type sensorSelection struct {
	Type string `json:"type"`
	Pin  any    `json:"pin,omitempty"`
}

type generationRequest struct {
	Board       string            `json:"board,omitempty"`
	Sensors     []sensorSelection `json:"sensors"`
	MQTTEnabled bool              `json:"mqtt_enabled"`
	WiFiSSID    string            `json:"wifi_ssid,omitempty"`
	MQTTBroker  string            `json:"mqtt_broker,omitempty"`
}

type FeatureContext struct {
	apiDriver    *driver.APIDriver
	request      generationRequest
	response     *http.Response
	responseData map[string]any
	previousData map[string]any
	buildID      string
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext(baseURL string) *FeatureContext {
	return &FeatureContext{
		apiDriver: driver.NewAPIDriver(baseURL),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the error message should be "([^"]*)"$`, fc.theErrorMessageShouldBe)

	// Health steps
	ctx.When(`^I call the healthz endpoint$`, fc.iCallTheHealthzEndpoint)
	ctx.Then(`^the response should contain status information$`, fc.theResponseShouldContainStatusInformation)

	// Catalog steps
	ctx.When(`^I list the supported sensors$`, fc.iListTheSupportedSensors)
	ctx.Then(`^the sensor list should contain "([^"]*)" with default pin (\d+)$`, fc.theSensorListShouldContainWithDefaultPin)
	ctx.Then(`^the sensor list should contain "([^"]*)" without a default pin$`, fc.theSensorListShouldContainWithoutADefaultPin)
	ctx.When(`^I list the supported boards$`, fc.iListTheSupportedBoards)
	ctx.Then(`^the board list should contain "([^"]*)" without networking$`, fc.theBoardListShouldContainWithoutNetworking)

	// Generation steps
	ctx.Given(`^a selection for board "([^"]*)"$`, fc.aSelectionForBoard)
	ctx.Given(`^the selection includes sensor "([^"]*)" on pin (\d+)$`, fc.theSelectionIncludesSensorOnPin)
	ctx.Given(`^the selection includes sensor "([^"]*)"$`, fc.theSelectionIncludesSensor)
	ctx.Given(`^the selection enables MQTT with Wi-Fi "([^"]*)"$`, fc.theSelectionEnablesMQTTWithWiFi)
	ctx.When(`^I request code generation$`, fc.iRequestCodeGeneration)
	ctx.When(`^I request code generation twice$`, fc.iRequestCodeGenerationTwice)
	ctx.When(`^I send the raw generation body "(.*)"$`, fc.iSendTheRawGenerationBody)
	ctx.Then(`^the generated code should contain "([^"]*)"$`, fc.theGeneratedCodeShouldContain)
	ctx.Then(`^the generated code should not contain "([^"]*)"$`, fc.theGeneratedCodeShouldNotContain)
	ctx.Then(`^the response should contain a build id$`, fc.theResponseShouldContainABuildID)
	ctx.Then(`^both responses should carry the same code and fingerprint$`, fc.bothResponsesShouldCarryTheSameCodeAndFingerprint)
	ctx.Then(`^the diagnostics should be exactly:$`, fc.theDiagnosticsShouldBeExactly)
	ctx.Then(`^the semantic errors should include "([^"]*)"$`, fc.theSemanticErrorsShouldInclude)

	// Build steps
	ctx.When(`^I fetch the build by its id$`, fc.iFetchTheBuildByItsID)
	ctx.When(`^I fetch the build "([^"]*)"$`, fc.iFetchTheBuild)
	ctx.Then(`^the build should list sensor "([^"]*)" for board "([^"]*)"$`, fc.theBuildShouldListSensorForBoard)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.response != nil {
			fc.response.Body.Close()
		}
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	fc.request = generationRequest{Sensors: []sensorSelection{}}
	fc.response = nil
	fc.responseData = nil
	fc.previousData = nil
	fc.buildID = ""
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	return json.NewDecoder(body).Decode(target)
}

// decodeResponse reads the current response into responseData once.
func (fc *FeatureContext) decodeResponse() map[string]any {
	if fc.responseData == nil {
		var data map[string]any
		fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
		fc.responseData = data
	}
	return fc.responseData
}
