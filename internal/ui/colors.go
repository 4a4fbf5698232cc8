package ui

// Color accessors return the escape code for a semantic role in the active
// theme. They are safe for concurrent use.

// ColorRed is used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for success messages.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for warnings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan is used for highlighted values.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for informational accents.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }
