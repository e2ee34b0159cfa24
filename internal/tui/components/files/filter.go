package files

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/sahilm/fuzzy"
	"github.com/yumosx/recycler/internal/fsext"
)

// Filter narrows the listed files. It is stored as the adapter tag so the
// list knows which filter produced its data.
type Filter struct {
	// Album is the directory files must sit in directly. Empty means any.
	Album string
	// Query is matched fuzzily against the path relative to the root.
	Query string
}

func (f Filter) Empty() bool {
	return f.Album == "" && f.Query == ""
}

func (f Filter) String() string {
	switch {
	case f.Empty():
		return "all files"
	case f.Query == "":
		return fmt.Sprintf("album %s", fsext.PrettyPath(f.Album))
	case f.Album == "":
		return fmt.Sprintf("%q", f.Query)
	default:
		return fmt.Sprintf("%q in %s", f.Query, fsext.PrettyPath(f.Album))
	}
}

// Apply returns the paths passing the filter. Without a query the order is
// kept; with one, the best matches come first and equal matches stay in
// listing order.
func (f Filter) Apply(root string, paths []string) []string {
	if f.Album != "" {
		paths = slices.DeleteFunc(slices.Clone(paths), func(p string) bool {
			return filepath.Dir(p) != f.Album
		})
	}
	if f.Query == "" {
		return paths
	}
	rels := make([]string, len(paths))
	for i, p := range paths {
		rels[i] = fsext.RelOrAbs(root, p)
	}
	matches := fuzzy.Find(f.Query, rels)
	// fuzzy reverses equal scores; ties keep the listing order.
	slices.SortStableFunc(matches, func(a, b fuzzy.Match) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Index, b.Index))
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = paths[m.Index]
	}
	return out
}

// Album is a directory holding listed files.
type Album struct {
	Name  string
	Dir   string
	Count int
}

func (a Album) String() string {
	return fmt.Sprintf("%s (%d)", a.Name, a.Count)
}

// AllAlbum stands for every file.
const AllAlbum = "All"

// Albums groups paths by directory. The first entry covers every path; the
// others follow by name.
func Albums(root string, paths []string) []Album {
	counts := map[string]int{}
	for _, p := range paths {
		counts[filepath.Dir(p)]++
	}
	albums := make([]Album, 0, len(counts)+1)
	albums = append(albums, Album{Name: AllAlbum, Count: len(paths)})
	for dir, n := range counts {
		albums = append(albums, Album{Name: fsext.RelOrAbs(root, dir), Dir: dir, Count: n})
	}
	slices.SortFunc(albums[1:], func(a, b Album) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return albums
}
