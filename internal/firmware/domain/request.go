package domain

// SensorSelection is one entry of a SelectionRequest. Pin keeps the raw text
// sent by the client; nil means no pin was given.
type SensorSelection struct {
	Type string
	Pin  *string
}

type SelectionRequest struct {
	BoardID      string
	Sensors      []SensorSelection
	MQTTEnabled  bool
	WiFiSSID     string
	WiFiPassword string
	MQTTBroker   string
}

// RequestsNetworking is true when MQTT is enabled or any connectivity field is set.
func (r SelectionRequest) RequestsNetworking() bool {
	return r.MQTTEnabled || r.WiFiSSID != "" || r.WiFiPassword != "" || r.MQTTBroker != ""
}
