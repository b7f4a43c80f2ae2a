package tui

// DisplayInputName shortens long video names for table cells: names up to 35
// characters render verbatim, longer ones keep the first 20 and last 12
// characters around an ellipsis.
func DisplayInputName(name string) string {
	if len(name) <= 35 {
		return name
	}
	return name[:20] + "..." + name[len(name)-12:]
}
