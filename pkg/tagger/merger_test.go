package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/tagset"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []tagset.TaggedToken
		want []tagset.TaggedToken
	}{
		{
			name: "sama dash sama",
			in:   tagset.Untagged([]string{"sama", "-", "sama"}),
			want: []tagset.TaggedToken{tagset.Pair("sama-sama", tagset.InterjectionReply)},
		},
		{
			name: "single token reply",
			in:   tagset.Untagged([]string{"Sama-Sama"}),
			want: []tagset.TaggedToken{tagset.Pair("sama-sama", tagset.InterjectionReply)},
		},
		{
			name: "sama sama",
			in:   tagset.Untagged([]string{"Sama", "sama", "ya"}),
			want: []tagset.TaggedToken{
				tagset.Pair("sama-sama", tagset.InterjectionReply),
				tagset.Pair("ya", tagset.None),
			},
		},
		{
			name: "reduplication",
			in:   tagset.Untagged([]string{"budi", "-", "budi"}),
			want: []tagset.TaggedToken{tagset.Pair("budi-budi", tagset.NounRepeat)},
		},
		{
			name: "reduplication is case sensitive",
			in:   []tagset.TaggedToken{tagset.Pair("Budi", tagset.NounProper), tagset.Pair("-", tagset.None), tagset.Pair("budi", tagset.None)},
			want: []tagset.TaggedToken{
				tagset.Pair("Budi", tagset.NounProper),
				tagset.Pair("-", tagset.SymbolDash),
				tagset.Pair("budi", tagset.None),
			},
		},
		{
			name: "dash between different words",
			in:   []tagset.TaggedToken{tagset.Pair("budi", tagset.NounProper), tagset.Pair("-", tagset.None), tagset.Pair("ani", tagset.None)},
			want: []tagset.TaggedToken{
				tagset.Pair("budi", tagset.NounProper),
				tagset.Pair("-", tagset.SymbolDash),
				tagset.Pair("ani", tagset.None),
			},
		},
		{
			name: "passthrough",
			in:   tagset.Untagged([]string{"saya", "makan"}),
			want: tagset.Untagged([]string{"saya", "makan"}),
		},
		{
			name: "empty",
			in:   nil,
			want: []tagset.TaggedToken{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.in, nil))
		})
	}
}

func TestMergeIdioms(t *testing.T) {
	idioms, err := lexicon.CompileIdioms([]lexicon.Idiom{
		{Phrase: "terima kasih", Tag: tagset.InterjectionReply},
		{Phrase: "terima kasih banyak", Tag: tagset.InterjectionReply},
		{Phrase: "rumah sakit", Tag: tagset.NounCommon},
	})
	require.NoError(t, err)

	got := Merge(tagset.Untagged([]string{"Terima", "kasih", "banyak", "ya"}), idioms)
	assert.Equal(t, []tagset.TaggedToken{
		tagset.Pair("Terima kasih banyak", tagset.InterjectionReply),
		tagset.Pair("ya", tagset.None),
	}, got)

	got = Merge(tagset.Untagged([]string{"ke", "rumah", "sakit"}), idioms)
	assert.Equal(t, []tagset.TaggedToken{
		tagset.Pair("ke", tagset.None),
		tagset.Pair("rumah sakit", tagset.NounCommon),
	}, got)

	// A phrase must end on a token boundary.
	got = Merge(tagset.Untagged([]string{"rumah", "sakitnya"}), idioms)
	assert.Len(t, got, 2)
}
