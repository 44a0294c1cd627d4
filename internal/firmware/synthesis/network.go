package synthesis

import (
	"fmt"
	"strconv"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

const (
	DefaultMQTTPort = 1883
	// TopicPrefix and TopicSuffix frame the per-device telemetry topic
	// daq/<device id>/sensors.
	TopicPrefix = "daq/"
	TopicSuffix = "/sensors"
)

var networkLibraries = []string{
	"knolleary/PubSubClient@^2.8",
	"bblanchon/ArduinoJson@^6.21.5",
}

// BrokerEndpoint splits a broker address into host and port. An optional
// mqtt:// or tcp:// scheme is dropped; a missing or invalid port falls back to
// DefaultMQTTPort.
func BrokerEndpoint(raw string) (string, int) {
	host := strings.TrimSpace(raw)
	for _, scheme := range []string{"mqtt://", "tcp://"} {
		host = strings.TrimPrefix(host, scheme)
	}

	if i := strings.LastIndex(host, ":"); i > 0 {
		port, err := strconv.Atoi(host[i+1:])
		if err == nil && port > 0 && port <= 65535 {
			return host[:i], port
		}
	}
	return host, DefaultMQTTPort
}

func networkFragment(board boardStrategy, settings domain.NetworkSettings) fragment {
	host, port := BrokerEndpoint(settings.MQTTBroker)

	return fragment{
		includes: []string{board.wifiInclude, "PubSubClient.h", "ArduinoJson.h"},
		globals: []string{
			fmt.Sprintf("const char* WIFI_SSID = %s;", cString(settings.WiFiSSID)),
			fmt.Sprintf("const char* WIFI_PASSWORD = %s;", cString(settings.WiFiPassword)),
			fmt.Sprintf("const char* MQTT_BROKER = %s;", cString(host)),
			fmt.Sprintf("const uint16_t MQTT_PORT = %d;", port),
			"",
			"WiFiClient wifiClient;",
			"PubSubClient mqttClient(wifiClient);",
			"String deviceId;",
			"String mqttTopic;",
			"",
			"void connectWiFi() {",
			"  WiFi.mode(WIFI_STA);",
			"  WiFi.begin(WIFI_SSID, WIFI_PASSWORD);",
			"  while (WiFi.status() != WL_CONNECTED) {",
			"    delay(500);",
			"    Serial.print('.');",
			"  }",
			"  Serial.println();",
			"  Serial.print(F(\"WiFi connected, IP: \"));",
			"  Serial.println(WiFi.localIP());",
			"}",
			"",
			"void connectMqtt() {",
			"  while (!mqttClient.connected()) {",
			"    if (mqttClient.connect(deviceId.c_str())) {",
			"      Serial.println(F(\"MQTT connected\"));",
			"    } else {",
			"      Serial.print(F(\"MQTT connect failed, rc=\"));",
			"      Serial.println(mqttClient.state());",
			"      delay(2000);",
			"    }",
			"  }",
			"}",
		},
		setup: []string{
			"connectWiFi();",
			"deviceId = WiFi.macAddress();",
			"deviceId.replace(\":\", \"\");",
			"deviceId.toLowerCase();",
			fmt.Sprintf("mqttTopic = String(%s) + deviceId + %s;", cString(TopicPrefix), cString(TopicSuffix)),
			"mqttClient.setServer(MQTT_BROKER, MQTT_PORT);",
			"connectMqtt();",
		},
		loop: []string{
			"if (WiFi.status() != WL_CONNECTED) {",
			"  connectWiFi();",
			"}",
			"if (!mqttClient.connected()) {",
			"  connectMqtt();",
			"}",
			"mqttClient.loop();",
		},
	}
}

func publishLines(payload []string) []string {
	lines := []string{
		"StaticJsonDocument<256> doc;",
		"doc[\"device_id\"] = deviceId;",
	}
	lines = append(lines, payload...)
	return append(lines,
		"char message[256];",
		"serializeJson(doc, message, sizeof(message));",
		"mqttClient.publish(mqttTopic.c_str(), message);",
	)
}
