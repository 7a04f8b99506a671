package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.Axes = mergeAxes(result.Axes, override.Axes)
	result.Highlight = mergeHighlight(result.Highlight, override.Highlight)
	result.Colors = mergeColors(result.Colors, override.Colors)

	if override.Relayout.PanMargin != 0 {
		result.Relayout.PanMargin = override.Relayout.PanMargin
	}
	if override.Relayout.WindowPadding != 0 {
		result.Relayout.WindowPadding = override.Relayout.WindowPadding
	}
	if override.Relayout.DefaultWindow != 0 {
		result.Relayout.DefaultWindow = override.Relayout.DefaultWindow
	}

	if override.Table.Path != "" {
		result.Table.Path = override.Table.Path
	}
	if override.Table.FocusPadding != 0 {
		result.Table.FocusPadding = override.Table.FocusPadding
	}

	if override.Server.Host != "" {
		result.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		result.Server.Port = override.Server.Port
	}
	if override.Server.ReadTimeout != "" {
		result.Server.ReadTimeout = override.Server.ReadTimeout
	}

	// Merge extensions
	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			// Otherwise just replace
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeAxes(base, override AxesConfig) AxesConfig {
	result := base

	// Groups replace as a whole; a partial list would pair axes wrongly.
	if len(override.Groups) > 0 {
		result.Groups = override.Groups
	}
	if override.Floor != 0 {
		result.Floor = override.Floor
	}
	if override.Padding != 0 {
		result.Padding = override.Padding
	}

	return result
}

func mergeHighlight(base, override HighlightConfig) HighlightConfig {
	result := base

	if override.HeaderRows != 0 {
		result.HeaderRows = override.HeaderRows
	}
	if override.Palette.VisibleEven != "" {
		result.Palette.VisibleEven = override.Palette.VisibleEven
	}
	if override.Palette.VisibleOdd != "" {
		result.Palette.VisibleOdd = override.Palette.VisibleOdd
	}
	if override.Palette.NeutralEven != "" {
		result.Palette.NeutralEven = override.Palette.NeutralEven
	}
	if override.Palette.NeutralOdd != "" {
		result.Palette.NeutralOdd = override.Palette.NeutralOdd
	}

	return result
}

func mergeColors(base, override ColorsConfig) ColorsConfig {
	result := base

	if len(override.Traces) > 0 {
		traces := make(map[string]string, len(base.Traces)+len(override.Traces))
		for k, v := range base.Traces {
			traces[k] = v
		}
		for k, v := range override.Traces {
			traces[k] = v
		}
		result.Traces = traces
	}
	if override.FillOpacity != 0 {
		result.FillOpacity = override.FillOpacity
	}
	if len(override.LineTraces) > 0 {
		result.LineTraces = override.LineTraces
	}

	return result
}
