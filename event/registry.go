package event

var typeToName = map[EventType]string{
	EventShotReleased:        "EventShotReleased",
	EventBasketMade:          "EventBasketMade",
	EventShotMissed:          "EventShotMissed",
	EventShotInfeasible:      "EventShotInfeasible",
	EventPerfectZonesChanged: "EventPerfectZonesChanged",
	EventScoreChanged:        "EventScoreChanged",
	EventFireChargeChanged:   "EventFireChargeChanged",
	EventFireStateChanged:    "EventFireStateChanged",
	EventBonusChanged:        "EventBonusChanged",
	EventMatchStarted:        "EventMatchStarted",
	EventTimerTick:           "EventTimerTick",
	EventMatchEnded:          "EventMatchEnded",
	EventPlayerAdvanced:      "EventPlayerAdvanced",
	EventPlayerFinished:      "EventPlayerFinished",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if n, ok := typeToName[et]; ok {
		return n
	}
	return "EventUnknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

func (et EventType) String() string {
	return GetEventName(et)
}
