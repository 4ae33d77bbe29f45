package lazyecs

// WorldStats is a diagnostic snapshot of a world's live contents: how many
// entities are alive and how many live entries each component type's store
// holds. Counts reflect the instant of the call; they are not kept in sync
// afterwards.
type WorldStats struct {
	InstanceID string         `json:"instance_id"`
	Namespace  string         `json:"namespace"`
	Entities   int            `json:"entities"`
	Components map[string]int `json:"components"`
}

// Stats returns a diagnostic snapshot of the world.
func (w *World) Stats() WorldStats {
	comps := make(map[string]int, len(w.registry.stores))
	for _, st := range w.registry.stores {
		comps[st.Name()] = st.Len()
	}
	return WorldStats{
		InstanceID: w.instanceID,
		Namespace:  w.Namespace(),
		Entities:   len(w.alive),
		Components: comps,
	}
}
