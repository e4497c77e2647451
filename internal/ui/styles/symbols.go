package styles

// Change markers used when listing sync deltas and staged changes.
const (
	SymbolAdded    = "+"
	SymbolModified = "~"
	SymbolDeleted  = "-"
	SymbolRenamed  = "→"
)

// ChangeSymbol returns the colored marker for a git status letter
// ('A', 'M', 'D', 'R', 'T'). Unknown letters are rendered muted as-is.
func ChangeSymbol(status byte) string {
	switch status {
	case 'A':
		return SuccessStyle.Render(SymbolAdded)
	case 'M', 'T':
		return WarningStyle.Render(SymbolModified)
	case 'D':
		return ErrorStyle.Render(SymbolDeleted)
	case 'R':
		return PrimaryStyle.Render(SymbolRenamed)
	default:
		return MutedStyle.Render(string(status))
	}
}
