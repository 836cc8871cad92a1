package cardfmt

var builtinKeywords = map[string]KeywordSpec{
	"%onceaturn%": {
		DisplayText:     "Once a Turn",
		BackgroundColor: "#ff6b6b",
		Color:           "white",
		Shape:           ShapePlain,
		FontScale:       0.9,
		FontWeight:      "bold",
		BorderRadius:    "12px",
		Padding:         "2px 8px",
	},
	"%whenattacking%": {
		DisplayText:     "When Attacking",
		BackgroundColor: "#ffd93d",
		Color:           "#333",
		Shape:           ShapePlain,
		FontScale:       0.9,
		FontWeight:      "bold",
		BorderRadius:    "12px",
		Padding:         "2px 8px",
	},
	"%onplay%": {
		DisplayText:     "On Play",
		BackgroundColor: "#4285f4",
		Color:           "white",
		Shape:           ShapePlain,
		FontScale:       0.9,
		FontWeight:      "bold",
		BorderRadius:    "16px",
		Padding:         "3px 10px",
	},
	"%tap%": {
		DisplayText: "Tap",
		Color:       "white",
		Shape:       ShapeImagePrefixed,
		Icon:        "tap.png",
		FontWeight:  "bold",
		TextShadow:  "1px 1px 2px black",
	},
	"%attacker%": {
		DisplayText:     "Attacker",
		BackgroundColor: "#e74c3c",
		Color:           "white",
		Shape:           ShapeRightTriangle,
		FontScale:       0.9,
		FontWeight:      "bold",
	},
	"%defender%": {
		DisplayText:     "Defender",
		BackgroundColor: "#3498db",
		Color:           "white",
		Shape:           ShapeDiamond,
		FontScale:       0.9,
		FontWeight:      "bold",
	},
}

// BuiltinKeywords returns a copy of the keywords every NewRegistry starts with.
func BuiltinKeywords() map[string]KeywordSpec {
	out := make(map[string]KeywordSpec, len(builtinKeywords))
	for token, spec := range builtinKeywords {
		out[token] = spec
	}
	return out
}
