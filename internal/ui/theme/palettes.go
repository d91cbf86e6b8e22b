package theme

// Harbor is the default dark-leaning palette: slate blues with signal colors
// taken from warehouse floor markings.
var Harbor = Palette{
	PrimaryHex:   Pair{Light: "#1F5F99", Dark: "#4F9BD9"},
	SecondaryHex: Pair{Light: "#3D6B8C", Dark: "#8DB7D6"},
	AccentHex:    Pair{Light: "#B26B00", Dark: "#F2B134"},

	ErrorHex:   Pair{Light: "#B3261E", Dark: "#F26D6D"},
	WarningHex: Pair{Light: "#A85A00", Dark: "#F29D38"},
	SuccessHex: Pair{Light: "#2E7D32", Dark: "#7BCB80"},
	InfoHex:    Pair{Light: "#1565C0", Dark: "#64B5F6"},

	TextHex:           Pair{Light: "#1C2833", Dark: "#E3EAF2"},
	TextMutedHex:      Pair{Light: "#5D6D7E", Dark: "#8396A8"},
	TextEmphasizedHex: Pair{Light: "#0B1620", Dark: "#FFFFFF"},

	BackgroundHex:          Pair{Light: "#F4F7FA", Dark: "#17212B"},
	BackgroundSecondaryHex: Pair{Light: "#DDE6EF", Dark: "#22313F"},

	BorderNormalHex:  Pair{Light: "#AAB7C4", Dark: "#3A4B5C"},
	BorderFocusedHex: Pair{Light: "#1F5F99", Dark: "#4F9BD9"},
}

// Paper is a light palette for bright terminals and screenshots.
var Paper = Palette{
	PrimaryHex:   Pair{Light: "#5B4B8A", Dark: "#A99BD6"},
	SecondaryHex: Pair{Light: "#6E6E6E", Dark: "#B0B0B0"},
	AccentHex:    Pair{Light: "#8A5A00", Dark: "#E0B050"},

	ErrorHex:   Pair{Light: "#A4262C", Dark: "#E57373"},
	WarningHex: Pair{Light: "#9A6700", Dark: "#E3B341"},
	SuccessHex: Pair{Light: "#1A7F37", Dark: "#6FCF97"},
	InfoHex:    Pair{Light: "#0969DA", Dark: "#79B8FF"},

	TextHex:           Pair{Light: "#24292F", Dark: "#E6E6E6"},
	TextMutedHex:      Pair{Light: "#6E7781", Dark: "#9DA5AE"},
	TextEmphasizedHex: Pair{Light: "#000000", Dark: "#FFFFFF"},

	BackgroundHex:          Pair{Light: "#FFFFFF", Dark: "#1E1E1E"},
	BackgroundSecondaryHex: Pair{Light: "#EFEDF5", Dark: "#2C2A33"},

	BorderNormalHex:  Pair{Light: "#D0D7DE", Dark: "#444C56"},
	BorderFocusedHex: Pair{Light: "#5B4B8A", Dark: "#A99BD6"},
}

// Signal is a high-contrast palette.
var Signal = Palette{
	PrimaryHex:   Pair{Light: "#0000AA", Dark: "#FFD400"},
	SecondaryHex: Pair{Light: "#005F5F", Dark: "#00E5E5"},
	AccentHex:    Pair{Light: "#AA00AA", Dark: "#FF66FF"},

	ErrorHex:   Pair{Light: "#CC0000", Dark: "#FF4040"},
	WarningHex: Pair{Light: "#B35900", Dark: "#FF9900"},
	SuccessHex: Pair{Light: "#007A00", Dark: "#33FF33"},
	InfoHex:    Pair{Light: "#0050B3", Dark: "#40A0FF"},

	TextHex:           Pair{Light: "#000000", Dark: "#FFFFFF"},
	TextMutedHex:      Pair{Light: "#404040", Dark: "#C0C0C0"},
	TextEmphasizedHex: Pair{Light: "#000000", Dark: "#FFFFFF"},

	BackgroundHex:          Pair{Light: "#FFFFFF", Dark: "#000000"},
	BackgroundSecondaryHex: Pair{Light: "#E0E0E0", Dark: "#262626"},

	BorderNormalHex:  Pair{Light: "#000000", Dark: "#FFFFFF"},
	BorderFocusedHex: Pair{Light: "#0000AA", Dark: "#FFD400"},
}

func init() {
	RegisterTheme("harbor", Harbor)
	RegisterTheme("paper", Paper)
	RegisterTheme("signal", Signal)
}
