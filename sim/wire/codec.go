// Package wire converts between the line-oriented JSON protocol and sim types.
package wire

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	sim "github.com/inference-sim/pearlsim/sim"
)

//go:embed state.schema.json
var stateSchemaJSON string

var (
	stateSchemaOnce sync.Once
	stateSchema     *jsonschema.Schema
	stateSchemaErr  error
)

// DecodeError reports an input line that is not valid JSON or does not
// match the state schema.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding state: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StateSchema returns the compiled schema every input line must satisfy.
func StateSchema() (*jsonschema.Schema, error) {
	stateSchemaOnce.Do(func() {
		stateSchema, stateSchemaErr = jsonschema.CompileString("state.schema.json", stateSchemaJSON)
	})
	return stateSchema, stateSchemaErr
}

// DecodeState parses one input line into a State after validating it
// against the state schema.
func DecodeState(line []byte) (*sim.State, error) {
	schema, err := StateSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling state schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &DecodeError{Reason: "schema mismatch", Err: err}
	}

	var state sim.State
	if err := json.Unmarshal(line, &state); err != nil {
		return nil, &DecodeError{Reason: "schema mismatch", Err: err}
	}
	return &state, nil
}

// EncodeActions renders one tick's actions as a single JSON object.
func EncodeActions(actions sim.ActionSet) ([]byte, error) {
	if actions == nil {
		actions = sim.ActionSet{}
	}
	out, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("encoding actions: %w", err)
	}
	return out, nil
}
