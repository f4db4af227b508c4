package sim

import (
	"encoding/json"
	"fmt"
)

// Action is what a single worker does this tick. The set of variants is
// closed: Pass and Nom are the only implementations.
type Action interface {
	// Pearl returns the id of the pearl the action applies to.
	Pearl() uint32
	isAction()
}

// Pass hands a pearl to an adjacent worker.
type Pass struct {
	PearlID  uint32
	ToWorker uint32
}

// Nom processes a pearl locally for one tick.
type Nom struct {
	PearlID uint32
}

func (p Pass) Pearl() uint32 { return p.PearlID }
func (n Nom) Pearl() uint32  { return n.PearlID }

func (Pass) isAction() {}
func (Nom) isAction()  {}

// ActionSet maps worker id to that worker's action for one tick.
// Workers without an action are absent.
type ActionSet map[uint32]Action

type passBody struct {
	PearlID  uint32 `json:"pearl_id"`
	ToWorker uint32 `json:"to_worker"`
}

type actionJSON struct {
	Pass *passBody `json:"Pass,omitempty"`
	Nom  *uint32   `json:"Nom,omitempty"`
}

// MarshalJSON encodes the set as {"<worker>":{"Pass":{...}}|{"Nom":id}}.
// An empty set encodes as {}.
func (s ActionSet) MarshalJSON() ([]byte, error) {
	out := make(map[uint32]actionJSON, len(s))
	for id, a := range s {
		switch a := a.(type) {
		case Pass:
			out[id] = actionJSON{Pass: &passBody{PearlID: a.PearlID, ToWorker: a.ToWorker}}
		case Nom:
			pearl := a.PearlID
			out[id] = actionJSON{Nom: &pearl}
		default:
			return nil, fmt.Errorf("worker %d: unsupported action %T", id, a)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format produced by MarshalJSON.
func (s *ActionSet) UnmarshalJSON(data []byte) error {
	var raw map[uint32]actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := make(ActionSet, len(raw))
	for id, a := range raw {
		switch {
		case a.Pass != nil && a.Nom == nil:
			set[id] = Pass{PearlID: a.Pass.PearlID, ToWorker: a.Pass.ToWorker}
		case a.Nom != nil && a.Pass == nil:
			set[id] = Nom{PearlID: *a.Nom}
		default:
			return fmt.Errorf("worker %d: action must be exactly one of Pass or Nom", id)
		}
	}
	*s = set
	return nil
}
