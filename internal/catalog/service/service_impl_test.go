package service

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogdomain "github.com/soundlake/lakehouse/internal/catalog/domain"
	"github.com/soundlake/lakehouse/internal/lake"
	"github.com/soundlake/lakehouse/internal/lake/parquetfs"
)

const catalogFixture = `{"num_songs":1,"song_id":"SOAAA111","title":"Foo","artist_id":"ARAAA111","artist_name":"The Foos","artist_location":"Oakland, CA","artist_latitude":37.8,"artist_longitude":-122.27,"year":2018,"duration":215.5}
{"num_songs":1,"song_id":"SOAAA111","title":"Foo","artist_id":"ARAAA111","artist_name":"The Foos","artist_location":"Oakland, CA","artist_latitude":37.8,"artist_longitude":-122.27,"year":2018,"duration":215.5}
{"num_songs":1,"song_id":"SOBBB222","title":"Bar","artist_id":"ARBBB222","artist_name":"Bar Band","artist_location":"","artist_latitude":null,"artist_longitude":null,"year":0,"duration":180.25}
{"num_songs":1,"song_id":"","title":"Orphan","artist_id":"ARBBB222","artist_name":"Bar Band","artist_location":"","artist_latitude":null,"artist_longitude":null,"year":0,"duration":99.1}
{"num_songs":1,"song_id":"SOCCC333","title":"Baz","artist_id":"","artist_name":"","artist_location":"","artist_latitude":null,"artist_longitude":null,"year":2001,"duration":120}
`

func newTestLake(t *testing.T) *lake.Lake {
	t.Helper()
	return &lake.Lake{In: afero.NewMemMapFs(), Out: afero.NewMemMapFs()}
}

func seedCatalog(t *testing.T, l *lake.Lake, data string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(l.In, "song_data/A/A/A/part-1.json", []byte(data), 0o644))
}

func newTestService(l *lake.Lake) catalogdomain.Service {
	return NewService(Params{Log: zap.NewNop(), Lake: l})
}

func TestRun_BuildsSongAndArtistTables(t *testing.T) {
	l := newTestLake(t)
	seedCatalog(t, l, catalogFixture)
	ctx := context.Background()

	require.NoError(t, newTestService(l).Run(ctx))

	// Read returns rows in partition-path order, so compare as sets.
	songs, err := parquetfs.Read[catalogdomain.Song](ctx, l.Out, "songs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []catalogdomain.Song{
		{SongID: "SOAAA111", Title: "Foo", ArtistID: "ARAAA111", Year: 2018, Duration: 215.5},
		{SongID: "SOBBB222", Title: "Bar", ArtistID: "ARBBB222", Year: 0, Duration: 180.25},
		{SongID: "SOCCC333", Title: "Baz", ArtistID: "", Year: 2001, Duration: 120},
	}, songs)

	artists, err := parquetfs.Read[catalogdomain.Artist](ctx, l.Out, "artists")
	require.NoError(t, err)
	require.Len(t, artists, 2)
	for _, a := range artists {
		assert.NotEmpty(t, a.ArtistID)
	}

	// Hive-style partition layout for songs, flat layout for artists.
	ok, err := afero.Exists(l.Out, "songs/year=2018/artist_id=ARAAA111/part-00000.parquet")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = afero.Exists(l.Out, "artists/part-00000.parquet")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_Idempotent(t *testing.T) {
	l := newTestLake(t)
	seedCatalog(t, l, catalogFixture)
	ctx := context.Background()
	svc := newTestService(l)

	require.NoError(t, svc.Run(ctx))
	first := snapshotTables(t, l.Out)
	require.NoError(t, svc.Run(ctx))
	second := snapshotTables(t, l.Out)

	assert.Equal(t, first, second, "two runs over identical input must serialize identically")
}

func TestRun_MissingInputIsStorageError(t *testing.T) {
	l := newTestLake(t)
	err := newTestService(l).Run(context.Background())
	assert.ErrorIs(t, err, lake.ErrStorage)
}

func TestRun_MalformedRecordIsSchemaError(t *testing.T) {
	l := newTestLake(t)
	seedCatalog(t, l, `{"song_id":12345}`+"\n")

	err := newTestService(l).Run(context.Background())
	assert.ErrorIs(t, err, lake.ErrSchema)

	written, statErr := afero.Exists(l.Out, "songs")
	require.NoError(t, statErr)
	assert.False(t, written, "a failed run must not commit output")
}

func snapshotTables(t *testing.T, fs afero.Fs) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := afero.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return err
		}
		files[p] = data
		return nil
	})
	require.NoError(t, err)
	return files
}
