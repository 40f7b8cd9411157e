package pdf

// FormatMinor expone formatMinor a los tests externos.
var FormatMinor = formatMinor
