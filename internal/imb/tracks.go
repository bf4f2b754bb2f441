package imb

// barTracks holds the two parallel binary tracks derived from the bar
// sequence: one bit per position for the ascender half and one for the
// descender half of each bar.
type barTracks struct {
	asc  [CodeLength]bool
	desc [CodeLength]bool
}

// splitBars converts bar states to orientation tracks using the fixed
// four-entry table: Full -> (1,1), Ascender -> (1,0), Descender -> (0,1),
// Tracker -> (0,0). Total by construction; a valid bar sequence cannot fail.
func splitBars(bars []BarState) barTracks {
	var tr barTracks
	for i, b := range bars {
		tr.asc[i] = b == Full || b == Ascender
		tr.desc[i] = b == Full || b == Descender
	}
	return tr
}
