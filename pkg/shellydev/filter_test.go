package shellydev

import (
	"testing"

	"github.com/asnowfix/ha-shelly-export/pkg/homeassistant"
	"github.com/go-logr/logr/testr"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		entityId string
		want     bool
	}{
		// All covers, whatever the name
		{"cover.garage", true},
		{"cover.living_room_blind", true},
		// Switches only when they carry the Shelly marker, any case
		{"switch.shelly_kitchen", true},
		{"switch.SHELLY_boiler", true},
		{"switch.tplink_plug", false},
		// Availability/connectivity helpers are never exported
		{"switch.shelly_kitchen_availability", false},
		{"cover.garage_Connectivity", false},
		{"binary_sensor.shelly_flood", false},
		{"light.shelly_hall", false},
		{"shelly_no_category", false},
	}
	for _, c := range cases {
		if got := Matches(c.entityId); got != c.want {
			t.Errorf("Matches(%q) = %v, want %v", c.entityId, got, c.want)
		}
	}
}

func TestCategory(t *testing.T) {
	if got := Category("switch.shelly_kitchen"); got != "switch" {
		t.Errorf("Category = %q, want %q", got, "switch")
	}
	if got := Category("nodot"); got != "nodot" {
		t.Errorf("Category = %q, want %q", got, "nodot")
	}
}

func TestFilterKeepsInputOrder(t *testing.T) {
	log := testr.New(t)
	entities := []homeassistant.Entity{
		{EntityId: "switch.shelly_kitchen", Attributes: map[string]any{"friendly_name": "Kitchen"}},
		{EntityId: "light.hall"},
		{EntityId: "cover.garage", Attributes: map[string]any{"friendly_name": "Garage Door"}},
		{EntityId: "switch.tplink_plug"},
		{EntityId: "cover.bedroom_blind"},
	}

	devices := Filter(log, entities)

	want := []DeviceEntry{
		{Id: "switch.shelly_kitchen", Name: "Kitchen"},
		{Id: "cover.garage", Name: "Garage Door"},
		{Id: "cover.bedroom_blind", Name: "cover.bedroom_blind"},
	}
	if len(devices) != len(want) {
		t.Fatalf("Filter returned %d devices, want %d: %v", len(devices), len(want), devices)
	}
	for i := range want {
		if devices[i] != want[i] {
			t.Errorf("devices[%d] = %v, want %v", i, devices[i], want[i])
		}
	}
}

func TestFilterDeduplicatesFirstWins(t *testing.T) {
	log := testr.New(t)
	entities := []homeassistant.Entity{
		{EntityId: "switch.shelly_kitchen", Attributes: map[string]any{"friendly_name": "First"}},
		{EntityId: "switch.shelly_kitchen", Attributes: map[string]any{"friendly_name": "Second"}},
	}

	devices := Filter(log, entities)

	if len(devices) != 1 {
		t.Fatalf("Filter returned %d devices, want 1", len(devices))
	}
	if devices[0].Name != "First" {
		t.Errorf("duplicate id kept name %q, want first occurrence %q", devices[0].Name, "First")
	}
}

func TestFilterEmptyInput(t *testing.T) {
	log := testr.New(t)
	if devices := Filter(log, nil); len(devices) != 0 {
		t.Errorf("Filter(nil) returned %v, want empty", devices)
	}
	entities := []homeassistant.Entity{
		{EntityId: "light.hall"},
		{EntityId: "sensor.outside_temperature"},
	}
	if devices := Filter(log, entities); len(devices) != 0 {
		t.Errorf("Filter with no matches returned %v, want empty", devices)
	}
}
