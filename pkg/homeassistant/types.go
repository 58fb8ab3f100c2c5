package homeassistant

// <https://developers.home-assistant.io/docs/api/rest/>

// Entity is one record from the hub's /api/states dump, kept verbatim as
// received. The entity id is a dotted string like "switch.shelly_kitchen":
// category prefix, then name.
type Entity struct {
	EntityId   string         `json:"entity_id"`
	State      string         `json:"state,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// FriendlyName returns the display name set in Home Assistant, falling back
// to the entity id when none is set.
func (e *Entity) FriendlyName() string {
	if name, ok := e.Attributes["friendly_name"].(string); ok && name != "" {
		return name
	}
	return e.EntityId
}
