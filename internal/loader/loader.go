// Package loader decodes and validates the orchestrator's JSON input
// document (spec.md §6). It is an external collaborator to the
// quantitative CTL core: it owns JSON shape validation and hands the core
// (via internal/network and internal/formula) only already-typed values.
// The document shape is grounded on
// _examples/original_source/src/multivalued_grn.py's MvGRNParser and
// _examples/original_source/src/main.py's generate_initial_states/
// validate_initial_states; JSON decoding itself uses encoding/json since
// none of the example repos carry an alternative JSON library worth
// displacing it for (see DESIGN.md).
package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/network"
)

// rawDocument mirrors the on-wire JSON shape of spec.md §6.
type rawDocument struct {
	Network struct {
		Variables   map[string]int `json:"variables"`
		Regulations []rawRegulation `json:"regulations"`
	} `json:"network"`
	Formula    string                  `json:"formula"`
	InitStates []map[string][]int     `json:"init_states"`
}

type rawRegulation struct {
	Target     string          `json:"target"`
	Regulators []rawRegulator  `json:"regulators"`
	Contexts   []rawContext    `json:"contexts"`
}

type rawRegulator struct {
	Variable   string `json:"variable"`
	Thresholds []int  `json:"thresholds"`
}

type rawContext struct {
	Intervals   []json.RawMessage `json:"intervals"`
	TargetValue int               `json:"target_value"`
}

// Document is the fully decoded, structurally validated input: a Network
// ready for internal/stg.Build, the raw formula text (still to be parsed
// by internal/formula once the network's variable names are known), and
// the optional initial-state regions.
type Document struct {
	Network    *network.Network
	Formula    string
	InitStates []InitRegion
}

// InitRegion is one admissible-values-per-variable region of spec.md §6's
// init_states: the full initial-state set is the union of each region's
// per-variable Cartesian product.
type InitRegion map[string][]int

// Load decodes and validates r as spec.md §6's input document.
func Load(r io.Reader) (*Document, error) {
	var raw rawDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	if raw.Network.Variables == nil {
		return nil, fmt.Errorf("%w: missing required field 'network.variables'", errs.ErrMalformedInput)
	}

	var errc error
	regulations := make([]network.Regulation, 0, len(raw.Network.Regulations))
	for _, rr := range raw.Network.Regulations {
		regulators := make([]network.Regulator, 0, len(rr.Regulators))
		for _, rg := range rr.Regulators {
			regulators = append(regulators, network.Regulator{Variable: rg.Variable, Thresholds: rg.Thresholds})
		}

		contexts := make([]network.Context, 0, len(rr.Contexts))
		for _, rc := range rr.Contexts {
			intervals := make([]network.IntervalSpec, 0, len(rc.Intervals))
			for _, rawInterval := range rc.Intervals {
				spec, err := decodeIntervalSpec(rawInterval)
				if err != nil {
					errc = multierr.Append(errc, err)
					continue
				}
				intervals = append(intervals, spec)
			}
			contexts = append(contexts, network.Context{Intervals: intervals, TargetValue: rc.TargetValue})
		}

		regulations = append(regulations, network.Regulation{
			Target:     rr.Target,
			Regulators: regulators,
			Contexts:   contexts,
		})
	}
	if errc != nil {
		return nil, errc
	}

	net, err := network.New(raw.Network.Variables, regulations)
	if err != nil {
		return nil, err
	}

	initStates := make([]InitRegion, 0, len(raw.InitStates))
	for _, region := range raw.InitStates {
		for name, values := range region {
			max, ok := raw.Network.Variables[name]
			if !ok {
				return nil, fmt.Errorf("%w: init_states references undeclared variable %q", errs.ErrMalformedFormula, name)
			}
			for _, v := range values {
				if v < 0 || v > max {
					return nil, fmt.Errorf("%w: init_states value %d for %q is outside [0,%d]", errs.ErrMalformedFormula, v, name, max)
				}
			}
		}
		initStates = append(initStates, InitRegion(region))
	}

	return &Document{Network: net, Formula: raw.Formula, InitStates: initStates}, nil
}

// decodeIntervalSpec decodes one interval-list entry, which is a JSON
// number (a 1-based interval index) or the JSON string "*" (wildcard).
func decodeIntervalSpec(raw json.RawMessage) (network.IntervalSpec, error) {
	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return network.IntervalSpec{Index: asInt}, nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString == "*" {
		return network.IntervalSpec{Wildcard: true}, nil
	}
	return network.IntervalSpec{}, fmt.Errorf("%w: context interval %s is neither an integer nor \"*\"", errs.ErrMalformedNetwork, string(raw))
}
