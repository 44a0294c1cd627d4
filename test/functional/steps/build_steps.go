package steps

func (fc *FeatureContext) iFetchTheBuildByItsID() error {
	if err := fc.theResponseShouldContainABuildID(); err != nil {
		return err
	}
	fc.response.Body.Close()

	return fc.iFetchTheBuild(fc.buildID)
}

func (fc *FeatureContext) iFetchTheBuild(id string) error {
	response, err := fc.apiDriver.GetBuild(id)
	if err != nil {
		return err
	}
	fc.response = response
	fc.responseData = nil
	return nil
}

func (fc *FeatureContext) theBuildShouldListSensorForBoard(sensorType, board string) error {
	data := fc.decodeResponse()
	fc.require.Equal(board, data["board"])
	fc.require.Contains(data["sensors"], sensorType)
	fc.require.NotEmpty(data["fingerprint"])
	return nil
}
