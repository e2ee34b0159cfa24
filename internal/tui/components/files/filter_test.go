package files

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var photos = []string{
	"/photos/trip/beach.png",
	"/photos/cat.png",
	"/photos/trip/boat.jpg",
	"/photos/car.png",
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty keeps order", filter: Filter{}, want: photos},
		{name: "album", filter: Filter{Album: "/photos/trip"}, want: []string{"/photos/trip/beach.png", "/photos/trip/boat.jpg"}},
		{name: "query", filter: Filter{Query: "ca"}, want: []string{"/photos/cat.png", "/photos/car.png"}},
		{name: "ties keep listing order", filter: Filter{Query: "png"}, want: []string{"/photos/cat.png", "/photos/car.png", "/photos/trip/beach.png"}},
		{name: "album and query", filter: Filter{Album: "/photos/trip", Query: "bt"}, want: []string{"/photos/trip/boat.jpg"}},
		{name: "no match", filter: Filter{Query: "zzz"}, want: []string{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.filter.Apply("/photos", photos))
		})
	}
}

func TestFilter_String(t *testing.T) {
	t.Parallel()

	require.True(t, Filter{}.Empty())
	require.Equal(t, "all files", Filter{}.String())
	require.Equal(t, `"cat"`, Filter{Query: "cat"}.String())
	require.Equal(t, "album /photos/trip", Filter{Album: "/photos/trip"}.String())
	require.Equal(t, `"b" in /photos/trip`, Filter{Album: "/photos/trip", Query: "b"}.String())
}

func TestAlbums(t *testing.T) {
	t.Parallel()

	albums := Albums("/photos", photos)
	require.Equal(t, []Album{
		{Name: AllAlbum, Count: 4},
		{Name: ".", Dir: "/photos", Count: 2},
		{Name: "trip", Dir: "/photos/trip", Count: 2},
	}, albums)
	require.Equal(t, "trip (2)", albums[2].String())
}
