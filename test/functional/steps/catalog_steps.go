package steps

import "fmt"

func (fc *FeatureContext) iListTheSupportedSensors() error {
	response, err := fc.apiDriver.ListSensors()
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iListTheSupportedBoards() error {
	response, err := fc.apiDriver.ListBoards()
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) findInList(key, value string) (map[string]any, error) {
	var items []map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &items))
	for _, item := range items {
		if item[key] == value {
			return item, nil
		}
	}
	return nil, fmt.Errorf("no entry with %s %q in %d items", key, value, len(items))
}

func (fc *FeatureContext) theSensorListShouldContainWithDefaultPin(sensorType string, pin int) error {
	sensor, err := fc.findInList("type", sensorType)
	if err != nil {
		return err
	}
	fc.require.EqualValues(pin, sensor["default_pin"])
	fc.require.Equal(true, sensor["requires_pin"])
	return nil
}

func (fc *FeatureContext) theSensorListShouldContainWithoutADefaultPin(sensorType string) error {
	sensor, err := fc.findInList("type", sensorType)
	if err != nil {
		return err
	}
	fc.require.NotContains(sensor, "default_pin")
	return nil
}

func (fc *FeatureContext) theBoardListShouldContainWithoutNetworking(boardID string) error {
	board, err := fc.findInList("id", boardID)
	if err != nil {
		return err
	}
	fc.require.Equal(false, board["supports_networking"])
	return nil
}
