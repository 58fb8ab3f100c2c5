package shellydev

import (
	"strings"

	"github.com/asnowfix/ha-shelly-export/pkg/homeassistant"
	"github.com/go-logr/logr"
)

// DeviceEntry is the exported projection of one matching entity.
type DeviceEntry struct {
	Id   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// familyMarker identifies Shelly devices within an entity id.
const familyMarker = "shelly"

// Category returns the entity id's prefix up to the first dot, e.g. "switch"
// for "switch.shelly_kitchen".
func Category(entityId string) string {
	category, _, _ := strings.Cut(entityId, ".")
	return category
}

// Matches reports whether an entity id designates a device we export:
// every cover, plus switches carrying the Shelly marker. Availability and
// connectivity helper entities are never exported, whatever their category.
func Matches(entityId string) bool {
	lower := strings.ToLower(entityId)
	if strings.Contains(lower, "availability") || strings.Contains(lower, "connectivity") {
		return false
	}
	switch Category(entityId) {
	case "cover":
		return true
	case "switch":
		return strings.Contains(lower, familyMarker)
	}
	return false
}

// Filter reduces the hub's raw entity list to the unique device entries to
// export, preserving input order. When the hub reports the same entity id
// twice, the first occurrence wins, including its friendly name.
func Filter(log logr.Logger, entities []homeassistant.Entity) []DeviceEntry {
	seen := make(map[string]bool, len(entities))
	devices := make([]DeviceEntry, 0, len(entities))

	for _, entity := range entities {
		if !Matches(entity.EntityId) {
			continue
		}
		if seen[entity.EntityId] {
			continue
		}
		seen[entity.EntityId] = true

		name := entity.FriendlyName()
		log.Info("Found Shelly device", "id", entity.EntityId, "name", name)
		devices = append(devices, DeviceEntry{Id: entity.EntityId, Name: name})
	}

	log.Info("Filtered unique Shelly device entities", "count", len(devices))
	return devices
}
