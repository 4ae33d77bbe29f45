package lazyecs

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs/codec"
	"pkg.world.dev/lazyecs/types"
)

// EntityState dumps one alive entity with the encoded value of each of its
// components.
func (w *World) EntityState(e types.EntityID) (types.EntityStateElement, error) {
	if !w.Alive(e) {
		return types.EntityStateElement{}, eris.Wrapf(ErrEntityNotAlive, "cannot dump state of entity %d", e)
	}
	comps := make(map[string]json.RawMessage)
	for _, st := range w.registry.stores {
		if !st.Has(e) {
			continue
		}
		c, err := st.GetAbstract(e)
		if err != nil {
			return types.EntityStateElement{}, eris.Wrapf(err, "failed to read component %q of entity %d", st.Name(), e)
		}
		bz, err := codec.Encode(c)
		if err != nil {
			return types.EntityStateElement{}, eris.Wrapf(err, "failed to encode component %q of entity %d", st.Name(), e)
		}
		comps[st.Name()] = bz
	}
	return types.EntityStateElement{ID: e, Components: comps}, nil
}

// DebugState dumps every alive entity with the encoded value of each of its
// components, ordered by ascending entity ID. It backs the diagnostics
// server's state endpoint and is useful in tests that want to snapshot a
// whole world.
func (w *World) DebugState() (types.EntityStateResponse, error) {
	resp := make(types.EntityStateResponse, 0, len(w.alive))
	for _, id := range w.aliveSorted() {
		elem, err := w.EntityState(id)
		if err != nil {
			return nil, err
		}
		resp = append(resp, elem)
	}
	return resp, nil
}
