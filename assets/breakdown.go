package assets

type Breakdown struct {
	Total      int            `json:"total"`
	Root       int            `json:"root"`
	Subfolders int            `json:"subfolders"`
	PerFolder  map[string]int `json:"perFolder"`
}

func BreakdownOf(entries []Entry) Breakdown {
	b := Breakdown{
		Total:     len(entries),
		PerFolder: make(map[string]int),
	}
	for _, e := range entries {
		if isRootLevel(e.PublicPath) {
			b.Root++
		}
		b.PerFolder[FolderLabel(e.PublicPath)]++
	}
	b.Subfolders = b.Total - b.Root
	return b
}
