package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/morfo/pkg/tagset"
)

func leaves(pairs ...string) []*Node {
	out := make([]*Node, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Leaf(tagset.Pair(pairs[i], tagset.Tag(pairs[i+1]))))
	}
	return out
}

func TestBuildVPTwoVerbs(t *testing.T) {
	nodes := leaves("bermain", "VB-ACT", "tertawa", "VB-STAT")

	vp, next := BuildVP(nodes, 0)
	require.NotNil(t, vp)
	assert.Equal(t, 2, next)
	assert.Equal(t, "(VP bermain/VB-ACT tertawa/VB-STAT)", vp.String())
	for _, c := range vp.Children {
		assert.True(t, c.IsLeaf())
	}
}

func TestBuildNPWithPredicate(t *testing.T) {
	nodes := leaves("kucing", "NN-COM", "itu", "PRP-DEM", "hitam", "JJ-QUALITY")

	span, next := BuildNP(nodes, 0)
	assert.Equal(t, 3, next)
	assert.Equal(t, "(NP kucing/NN-COM itu/PRP-DEM) (VP hitam/JJ-QUALITY)", Forest(span))
}

func TestBuildNPEmptyBuffer(t *testing.T) {
	span, next := BuildNP(leaves(",", "SYM-COMMA"), 0)
	assert.Equal(t, 0, next)
	require.Len(t, span, 1)
	assert.True(t, span[0].Is(NP))
	assert.Empty(t, span[0].Children)

	span, next = BuildNP(leaves("makan", "VB-ACT"), 0)
	assert.Equal(t, 1, next)
	assert.Equal(t, "(NP) (VP makan/VB-ACT)", Forest(span))
}

func TestBuildVP(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*Node
		want  string
		next  int
	}{
		{
			name:  "modal embeds nested VP under PP",
			nodes: leaves("akan", "MOD-TEMP", "makan", "VB-ACT", "nasi", "NN-COM"),
			want:  "(VP (PP akan/MOD-TEMP (VP makan/VB-ACT (NP nasi/NN-COM))))",
			next:  3,
		},
		{
			name:  "modal without verb stays a leaf",
			nodes: leaves("makan", "VB-ACT", "sudah", "MOD-TEMP", ".", "SYM-END"),
			want:  "(VP makan/VB-ACT sudah/MOD-TEMP)",
			next:  2,
		},
		{
			name:  "preposition before verb embeds clause",
			nodes: leaves("pergi", "VB-ACT", "untuk", "IN-PURP", "makan", "VB-ACT"),
			want:  "(VP pergi/VB-ACT (PP untuk/IN-PURP (VP makan/VB-ACT)))",
			next:  3,
		},
		{
			name:  "preposition with noun then adverb",
			nodes: leaves("tidur", "VB-STAT", "di", "IN-LOC", "rumah", "NN-COM", "sangat", "ADV-DEG"),
			want:  "(VP tidur/VB-STAT (PP di/IN-LOC (NP rumah/NN-COM)) sangat/ADV-DEG)",
			next:  4,
		},
		{
			name:  "preposition with adverb only",
			nodes: leaves("datang", "VB-ACT", "dari", "IN-SRC", "kemarin", "ADV-TIME"),
			want:  "(VP datang/VB-ACT (PP dari/IN-SRC (ADVP kemarin/ADV-TIME)))",
			next:  3,
		},
		{
			name:  "bare preposition",
			nodes: leaves("pergi", "VB-ACT", "ke", "IN-DIR", ".", "SYM-END"),
			want:  "(VP pergi/VB-ACT (PP ke/IN-DIR))",
			next:  2,
		},
		{
			name:  "object then trailing prepositions",
			nodes: leaves("makan", "VB-ACT", "nasi", "NN-COM", "di", "IN-LOC", "rumah", "NN-COM", "dengan", "IN-COM", "ibu", "NN-COM"),
			want:  "(VP makan/VB-ACT (NP nasi/NN-COM) (PP di/IN-LOC (NP rumah/NN-COM)) (PP dengan/IN-COM (NP ibu/NN-COM)))",
			next:  6,
		},
		{
			name:  "object with predicate is flattened",
			nodes: leaves("lihat", "VB-ACT", "kucing", "NN-COM", "tidur", "VB-STAT"),
			want:  "(VP lihat/VB-ACT (NP kucing/NN-COM) (VP tidur/VB-STAT))",
			next:  3,
		},
		{
			name:  "nothing to build",
			nodes: leaves(".", "SYM-END"),
			want:  "(VP)",
			next:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, next := BuildVP(tt.nodes, 0)
			require.NotNil(t, vp)
			assert.Equal(t, tt.want, vp.String())
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestBuildVPPrebuiltPP(t *testing.T) {
	pp := Phrase(PP, leaves("di", "IN-LOC", "sini", "PRP-DEM")...)
	nodes := append(leaves("makan", "VB-ACT"), pp)
	nodes = append(nodes, leaves("tidur", "VB-STAT")...)

	vp, next := BuildVP(nodes, 0)
	// The verb after the embedded PP does not attach.
	assert.Equal(t, 2, next)
	assert.Equal(t, "(VP makan/VB-ACT (PP di/IN-LOC sini/PRP-DEM))", vp.String())
}

func TestBuildPP(t *testing.T) {
	prebuilt := Phrase(NP, leaves("pasar", "NN-COM")...)

	tests := []struct {
		name  string
		nodes []*Node
		want  string
		next  int
	}{
		{"adverbs", leaves("dengan", "IN-COM", "sangat", "ADV-DEG", "juga", "ADV-ADD"), "(PP dengan/IN-COM (ADVP sangat/ADV-DEG juga/ADV-ADD))", 3},
		{"prebuilt NP", append(leaves("ke", "IN-DIR"), prebuilt), "(PP ke/IN-DIR (NP pasar/NN-COM))", 2},
		{"fresh NP", leaves("ke", "IN-DIR", "pasar", "NN-COM", "itu", "PRP-DEM"), "(PP ke/IN-DIR (NP pasar/NN-COM itu/PRP-DEM))", 3},
		{"bare", leaves("ke", "IN-DIR"), "(PP ke/IN-DIR)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp, next := BuildPP(tt.nodes, 0)
			assert.Equal(t, tt.want, pp.String())
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestBuildADJPAndADVP(t *testing.T) {
	adjp, next := BuildADJP(leaves("cantik", "JJ-QUALITY", "senang", "JJ-EMOTION", "dan", "CC"), 0)
	assert.Equal(t, "(ADJP cantik/JJ-QUALITY senang/JJ-EMOTION)", adjp.String())
	assert.Equal(t, 2, next)

	advp, next := BuildADVP(leaves("sangat", "ADV-DEG", "akan", "MOD-TEMP", "makan", "VB-ACT"), 0)
	assert.Equal(t, "(ADVP sangat/ADV-DEG akan/MOD-TEMP)", advp.String())
	assert.Equal(t, 2, next)
}

func TestBuildInterrog(t *testing.T) {
	nodes := leaves("apa", "Q-WHAT", "\"", "SYM-QUOTE", "kamu", "PRP-PER", "makan", "VB-ACT", "?", "SYM-END")

	n, next := BuildInterrog(nodes, 0)
	require.NotNil(t, n)
	assert.Equal(t, `(INTERROG (WH apa/Q-WHAT "/SYM-QUOTE) (VP kamu/PRP-PER makan/VB-ACT))`, n.String())
	assert.Equal(t, 4, next)

	n, next = BuildInterrog(leaves("siapa", "Q-WHO", "?", "SYM-END"), 0)
	assert.Equal(t, "(INTERROG (WH siapa/Q-WHO))", n.String())
	assert.Equal(t, 1, next)

	n, next = BuildInterrog(leaves("kamu", "PRP-PER"), 0)
	assert.Nil(t, n)
	assert.Equal(t, 0, next)
}

func TestBuildersPastEnd(t *testing.T) {
	nodes := leaves("makan", "VB-ACT")

	span, next := BuildNP(nodes, 1)
	assert.Nil(t, span)
	assert.Equal(t, 1, next)

	for name, build := range map[string]func([]*Node, int) (*Node, int){
		"VP": BuildVP, "PP": BuildPP, "ADJP": BuildADJP, "ADVP": BuildADVP, "INTERROG": BuildInterrog,
	} {
		n, next := build(nodes, 1)
		assert.Nil(t, n, name)
		assert.Equal(t, 1, next, name)
	}
}

func TestChunk(t *testing.T) {
	tokens := []tagset.TaggedToken{
		tagset.Pair("saya", "PRP-PER"),
		tagset.Pair("makan", "VB-ACT"),
		tagset.Pair("nasi", "NN-COM"),
		tagset.Pair("di", "IN-LOC"),
		tagset.Pair("rumah", "NN-COM"),
		tagset.Pair(".", "SYM-END"),
	}

	forest := Chunk(tokens)
	assert.Equal(t,
		"(NP saya/PRP-PER) (VP makan/VB-ACT (NP nasi/NN-COM) (PP di/IN-LOC (NP rumah/NN-COM))) ./SYM-END",
		Forest(forest))
}

func TestChunkEndToEndVerbs(t *testing.T) {
	forest := Chunk([]tagset.TaggedToken{
		tagset.Pair("bermain", tagset.VerbActive),
		tagset.Pair("tertawa", tagset.VerbStative),
	})
	require.Len(t, forest, 1)
	assert.True(t, forest[0].Is(VP))
	assert.Len(t, forest[0].Children, 2)
}

func TestChunkDispatch(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"senang", "JJ-EMOTION"}, "(ADJP senang/JJ-EMOTION)"},
		{[]string{"baru", "JJ-AGE", "buku", "NN-COM"}, "(NP baru/JJ-AGE buku/NN-COM)"},
		{[]string{"sangat", "ADV-DEG"}, "(ADVP sangat/ADV-DEG)"},
		{[]string{"di", "IN", "rumah", "NN-COM"}, "(PP di/IN (NP rumah/NN-COM))"},
		{[]string{"bisa", "MOD-ACT", "pergi", "VB-ACT"}, "(VP (PP bisa/MOD-ACT (VP pergi/VB-ACT)))"},
		{[]string{"dan", "CC", "-", "SYM-DASH"}, "dan/CC -/SYM-DASH"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Forest(ChunkNodes(leaves(tt.tokens...))))
	}
}

func TestChunkWellFormed(t *testing.T) {
	inputs := [][]string{
		{"saya", "PRP-PER", "makan", "VB-ACT", "nasi", "NN-COM", ".", "SYM-END"},
		{"apa", "Q-WHAT", "yang", "PRP-REL", "kamu", "PRP-PER", "baca", "VB-ACT", "?", "SYM-END"},
		{"akan", "MOD-TEMP", "pergi", "VB-ACT", "ke", "IN-DIR", "pasar", "NN-COM", "sangat", "ADV-DEG", "senang", "JJ-EMOTION"},
		{"sang", "DT-DEF", "kucing", "NN-COM", "hitam", "JJ-QUALITY", "tidur", "VB-STAT", "di", "IN-LOC", "sini", "PRP-DEM"},
		{"-", "SYM-DASH", "x", "FOO", "dari", "IN-SRC", "makan", "VB-ACT", "itu", "PRP-DEM", "lagi", "ADV-REP"},
	}

	for _, in := range inputs {
		nodes := leaves(in...)
		var want []tagset.TaggedToken
		for _, n := range nodes {
			want = append(want, *n.Token)
		}

		forest := ChunkNodes(nodes)

		var got []tagset.TaggedToken
		for _, n := range forest {
			assertLabels(t, n)
			got = append(got, n.Tokens()...)
		}
		assert.Equal(t, want, got, "every leaf appears once, in order")
	}
}

func assertLabels(t *testing.T, n *Node) {
	t.Helper()
	if n.IsLeaf() {
		return
	}
	assert.True(t, n.Label.Valid(), "label %q", n.Label)
	for _, c := range n.Children {
		assertLabels(t, c)
	}
}
