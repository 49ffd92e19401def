package broadcast

// Envelope is the wire format for a delivered message.
// Built once per Publish call and marshaled exactly once; every matching
// subscriber receives the same serialized frame.
type Envelope struct {
	Channel string         `json:"channel"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}
