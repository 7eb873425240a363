package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseGridLines: false,
		Colors: ConfigColors{
			BackgroundColor: 234,
			GridLineColor:   238,
			BorderColor:     244,
			TextColor:       252,
		},
		Symbols: ConfigSymbols{
			Block:   '█',
			Empty:   ' ',
			Preview: '░',
		},
		Palette: []string{
			"#001f3f",
			"#0074d9",
			"#7fdbff",
			"#39cccc",
			"#ff4136",
			"#ffdc00",
		},
		PreviewBlend: 0.6,
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			DropDelayMs: 100,
			Autoplay:    true,
		},
		Keys: map[string]string{
			"j": "down",
			"h": "left",
			"l": "right",
			"k": "rotate",
			"c": "hold",
			" ": "drop",
			"a": "autoplay",
		},
	}
}
