package config

import (
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// Request returns the layout request for kind: defaults, then the shared
// chart sections, then the chart.<kind> section.
func (c *Config) Request(kind layout.ChartKind) (layout.Request, error) {
	req, err := layout.NewRequest(kind)
	if err != nil {
		return nil, err
	}

	shared := make(map[string]any)
	for _, key := range []string{"axis", "color", "animation"} {
		if v, ok := c.Chart[key]; ok {
			shared[key] = v
		}
	}
	if err := DecodeInto(req, shared); err != nil {
		return nil, core.NewConfigurationError("chart", "%v", err)
	}

	if section, ok := c.Chart[string(kind)]; ok {
		m, ok := section.(map[string]any)
		if !ok {
			return nil, core.NewConfigurationError("chart."+string(kind), "expected a mapping, got %T", section)
		}
		if err := DecodeInto(req, maps.Clone(m)); err != nil {
			return nil, core.NewConfigurationError("chart."+string(kind), "%v", err)
		}
	}
	return req, nil
}

// DecodeInto decodes raw over the current values of target using koanf tag
// names. Enum strings go through their UnmarshalText methods and unknown
// keys are rejected.
func DecodeInto(target any, raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "koanf",
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	return dec.Decode(raw)
}
