package protocol

// Message types used on the TV service bus.
const (
	TypeRegister    = "register"
	TypeRequest     = "request"
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypeResponse    = "response"
	TypeRegistered  = "registered"
	TypeError       = "error"
)

// Message is one logical frame exchanged with the TV.
//
// Wire format:
//
//	{
//	  "type": "request",
//	  "id": "01J8...",
//	  "uri": "ssap://audio/getVolume",
//	  "payload": {...}
//	}
//
// Inbound error frames carry a top-level "error" string instead of a
// payload. The "id" field correlates a response with the request that
// caused it; frames without an id are notifications the SDK ignores.
type Message struct {
	Type    string         `json:"type"`
	ID      string         `json:"id,omitempty"`
	URI     string         `json:"uri,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// messageFromMap builds a Message from a decoded JSON object.
// Fields with unexpected types are left at their zero values.
func messageFromMap(raw map[string]any) *Message {
	msg := &Message{}

	if t, ok := raw["type"].(string); ok {
		msg.Type = t
	}

	if id, ok := raw["id"].(string); ok {
		msg.ID = id
	}

	if uri, ok := raw["uri"].(string); ok {
		msg.URI = uri
	}

	if payload, ok := raw["payload"].(map[string]any); ok {
		msg.Payload = payload
	}

	if errMsg, ok := raw["error"].(string); ok {
		msg.Error = errMsg
	}

	return msg
}

// IsError reports whether the frame is a protocol-level error.
func (m *Message) IsError() bool {
	return m.Type == TypeError
}

// ErrorMessage returns the error string from an error frame.
func (m *Message) ErrorMessage() string {
	if m.Error != "" {
		return m.Error
	}

	return "unknown communication error"
}

// ClientKey extracts the client key from a registered frame's payload.
func (m *Message) ClientKey() string {
	if m.Payload == nil {
		return ""
	}

	key, _ := m.Payload["client-key"].(string)

	return key
}

// PairingType extracts the pairingType field from the payload, used to
// detect the on-screen pairing prompt during registration.
func (m *Message) PairingType() string {
	if m.Payload == nil {
		return ""
	}

	pt, _ := m.Payload["pairingType"].(string)

	return pt
}
