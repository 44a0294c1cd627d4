package steps

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

func (fc *FeatureContext) aSelectionForBoard(board string) error {
	fc.request.Board = board
	return nil
}

func (fc *FeatureContext) theSelectionIncludesSensorOnPin(sensorType string, pin int) error {
	fc.request.Sensors = append(fc.request.Sensors, sensorSelection{Type: sensorType, Pin: pin})
	return nil
}

func (fc *FeatureContext) theSelectionIncludesSensor(sensorType string) error {
	fc.request.Sensors = append(fc.request.Sensors, sensorSelection{Type: sensorType})
	return nil
}

func (fc *FeatureContext) theSelectionEnablesMQTTWithWiFi(ssid string) error {
	fc.request.MQTTEnabled = true
	fc.request.WiFiSSID = ssid
	return nil
}

func (fc *FeatureContext) generate() (*http.Response, error) {
	body, err := json.Marshal(fc.request)
	if err != nil {
		return nil, err
	}
	return fc.apiDriver.GenerateCode(body)
}

func (fc *FeatureContext) iRequestCodeGeneration() error {
	response, err := fc.generate()
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iRequestCodeGenerationTwice() error {
	if err := fc.iRequestCodeGeneration(); err != nil {
		return err
	}
	fc.require.Equal(http.StatusOK, fc.response.StatusCode)
	fc.previousData = fc.decodeResponse()
	fc.response.Body.Close()

	fc.responseData = nil
	return fc.iRequestCodeGeneration()
}

func (fc *FeatureContext) iSendTheRawGenerationBody(body string) error {
	var unescaped string
	if err := json.Unmarshal([]byte(`"`+body+`"`), &unescaped); err != nil {
		return fmt.Errorf("step body is not a valid escaped string: %w", err)
	}

	response, err := fc.apiDriver.GenerateCode([]byte(unescaped))
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) generatedCode() string {
	code, ok := fc.decodeResponse()["code"].(string)
	fc.require.True(ok, "code should be a string")
	return code
}

func (fc *FeatureContext) theGeneratedCodeShouldContain(fragment string) error {
	fc.require.Contains(fc.generatedCode(), fragment)
	return nil
}

func (fc *FeatureContext) theGeneratedCodeShouldNotContain(fragment string) error {
	fc.require.NotContains(fc.generatedCode(), fragment)
	return nil
}

func (fc *FeatureContext) theResponseShouldContainABuildID() error {
	id, ok := fc.decodeResponse()["build_id"].(string)
	fc.require.True(ok, "build_id should be a string")
	fc.require.NotEmpty(id)
	fc.buildID = id
	return nil
}

func (fc *FeatureContext) bothResponsesShouldCarryTheSameCodeAndFingerprint() error {
	current := fc.decodeResponse()
	fc.require.Equal(fc.previousData["code"], current["code"])
	fc.require.Equal(fc.previousData["platformio_ini"], current["platformio_ini"])
	fc.require.Equal(fc.previousData["fingerprint"], current["fingerprint"])
	fc.require.NotEqual(fc.previousData["build_id"], current["build_id"])
	return nil
}

func (fc *FeatureContext) theDiagnosticsShouldBeExactly(table *godog.Table) error {
	expected := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows[1:] {
		expected = append(expected, row.Cells[0].Value)
	}

	diagnostics, ok := fc.decodeResponse()["diagnostics"].([]any)
	fc.require.True(ok, "diagnostics should be a list")

	kinds := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		kinds = append(kinds, d.(map[string]any)["kind"].(string))
	}
	fc.require.Equal(expected, kinds)
	return nil
}

func (fc *FeatureContext) theSemanticErrorsShouldInclude(message string) error {
	errors, ok := fc.decodeResponse()["semantic_errors"].([]any)
	fc.require.True(ok, "semantic_errors should be a list")
	fc.require.Contains(errors, message)
	return nil
}
