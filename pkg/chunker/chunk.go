package chunker

import "github.com/kittclouds/morfo/pkg/tagset"

// Chunk groups a tagged sequence into a phrase forest.
func Chunk(tokens []tagset.TaggedToken) []*Node {
	return ChunkNodes(Leaves(tokens))
}

// ChunkNodes groups a node stream into a phrase forest. Pre-built phrase
// nodes pass through unless a builder consumes them. Every input leaf ends
// up in the forest exactly once.
func ChunkNodes(nodes []*Node) []*Node {
	forest := make([]*Node, 0, len(nodes))

	for i := 0; i < len(nodes); {
		built, next := chunkAt(nodes, i)
		if next <= i {
			// No builder made progress; emit the node as it is.
			forest = append(forest, nodes[i])
			i++
			continue
		}
		forest = append(forest, built...)
		i = next
	}

	return forest
}

// chunkAt dispatches on the tag at i to the matching builder.
func chunkAt(nodes []*Node, i int) ([]*Node, int) {
	if !nodes[i].IsLeaf() {
		return nil, i
	}

	tag := nodes[i].Tag()
	switch {
	case tag.HasPrefix("Q-"):
		return one(BuildInterrog(nodes, i))
	case isNPTag(tag):
		return BuildNP(nodes, i)
	case isVerbTag(tag), isModalHead(tag):
		return one(BuildVP(nodes, i))
	case tag.Root() == "IN":
		return one(BuildPP(nodes, i))
	case tag == tagset.AdjEmotion, tag == tagset.AdjQuality:
		return one(BuildADJP(nodes, i))
	case tag.HasPrefix("JJ"):
		return BuildNP(nodes, i)
	case isAdvTag(tag):
		return one(BuildADVP(nodes, i))
	}
	return nil, i
}

func one(n *Node, next int) ([]*Node, int) {
	if n == nil {
		return nil, next
	}
	return []*Node{n}, next
}
