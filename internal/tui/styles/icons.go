package styles

const (
	CheckIcon     string = "✓"
	ErrorIcon     string = "×"
	LoadingIcon   string = "⟳"
	FolderIcon    string = "▸"
	CheckedBox    string = "[x]"
	UncheckedBox  string = "[ ]"
	EndOfListIcon string = "—"
)
