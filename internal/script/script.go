// Package script loads action scripts and replays them against a store.
//
// A TOML script lists actions as an array of tables:
//
//	[[action]]
//	kind = "SESSION_SIGN_IN"
//	[action.payload]
//	username = "ada"
//
// A JSON script is an array of {"kind": ..., "payload": {...}} objects.
// Payloads are decoded with dashboard.Decode.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/builderstore/pkg/dashboard"
	"github.com/bft-labs/builderstore/pkg/store"
)

// Format is a script encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Step is one scripted action before decoding.
type Step struct {
	Kind    string         `toml:"kind" json:"kind"`
	Payload map[string]any `toml:"payload" json:"payload"`
}

type tomlScript struct {
	Action []Step `toml:"action"`
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported script type %q", filepath.Ext(path))
}

// Load reads and decodes the script at path.
func Load(path string) ([]store.Action, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	actions, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}

// Parse decodes a script.
func Parse(data []byte, format Format) ([]store.Action, error) {
	var steps []Step
	switch format {
	case FormatTOML:
		var s tomlScript
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		steps = s.Action
	case FormatJSON:
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported script format %q", format)
	}

	actions := make([]store.Action, 0, len(steps))
	for i, st := range steps {
		if st.Kind == "" {
			return nil, fmt.Errorf("step %d: missing kind", i+1)
		}
		a, err := dashboard.Decode(st.Kind, st.Payload)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Play dispatches actions in order, waiting delay between them. onStep,
// if set, runs after each dispatch. Play stops early when ctx is done.
func Play(ctx context.Context, d store.Dispatcher, actions []store.Action, delay time.Duration, onStep func(i int, a store.Action)) error {
	for i, a := range actions {
		if i > 0 && delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		d.Dispatch(a)
		if onStep != nil {
			onStep(i, a)
		}
	}
	return nil
}
