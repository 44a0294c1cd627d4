package steps

func (fc *FeatureContext) iCallTheHealthzEndpoint() error {
	response, err := fc.apiDriver.GetHealthz()
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theResponseShouldContainStatusInformation() error {
	data := fc.decodeResponse()

	fc.require.Equal("success", data["status"], "Status should be 'success'")
	node, ok := data["node"].(map[string]any)
	fc.require.True(ok, "node should be an object")
	fc.require.NotEmpty(node["version"], "version should not be empty")
	fc.require.NotEmpty(node["commit_hash"], "commit_hash should not be empty")
	return nil
}
