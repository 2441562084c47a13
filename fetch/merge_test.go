package fetch_test

import (
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(key, label string, owners ...string) *symdex.Entry {
	e := &symdex.Entry{Key: key, Label: label}
	for _, o := range owners {
		e.References = append(e.References, symdex.Reference{
			Label:    label,
			URL:      "classOgre_1_1Node.html#a1",
			Relative: true,
			Owner:    o,
		})
	}
	return e
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("concatenates files in order", func(t *testing.T) {
		t.Parallel()

		merged := fetch.Merge(
			[]*symdex.Entry{entry("mesh", "Mesh", "Ogre")},
			[]*symdex.Entry{entry("node", "Node", "Ogre"), entry("numnodes", "numNodes", "Ogre::Octree")},
		)

		require.Len(t, merged, 3)
		assert.Equal(t, "mesh", merged[0].Key)
		assert.Equal(t, "node", merged[1].Key)
		assert.Equal(t, "numnodes", merged[2].Key)
	})

	t.Run("appends references of a repeated key to its first entry", func(t *testing.T) {
		t.Parallel()

		merged := fetch.Merge(
			[]*symdex.Entry{entry("node", "Node", "Ogre")},
			[]*symdex.Entry{entry("mesh", "Mesh", "Ogre"), entry("node", "Node", "Ogre::Node::Node()")},
		)

		require.Len(t, merged, 2)
		assert.Equal(t, "node", merged[0].Key)
		require.Len(t, merged[0].References, 2)
		assert.Equal(t, "Ogre", merged[0].References[0].Owner)
		assert.Equal(t, "Ogre::Node::Node()", merged[0].References[1].Owner)
	})

	t.Run("keeps identical references", func(t *testing.T) {
		t.Parallel()

		merged := fetch.Merge(
			[]*symdex.Entry{entry("numnodes", "numNodes", "Ogre::Octree")},
			[]*symdex.Entry{entry("numnodes", "numNodes", "Ogre::Octree")},
		)

		require.Len(t, merged, 1)
		assert.Len(t, merged[0].References, 2)
	})

	t.Run("does not modify its input", func(t *testing.T) {
		t.Parallel()

		first := entry("node", "Node", "Ogre")
		_ = fetch.Merge([]*symdex.Entry{first}, []*symdex.Entry{entry("node", "Node", "Ogre::Node")})

		assert.Len(t, first.References, 1)
	})

	t.Run("result builds a valid index", func(t *testing.T) {
		t.Parallel()

		merged := fetch.Merge(
			[]*symdex.Entry{entry("node", "Node", "Ogre"), entry("mesh", "Mesh", "Ogre")},
			[]*symdex.Entry{entry("node", "Node", "Ogre::Node"), entry("mesh", "Mesh", "Ogre::Mesh")},
		)

		idx, err := symdex.NewIndex(merged)
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, 4, idx.ReferenceCount())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fetch.Merge())
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, fetch.ComputeHash("a", "b"), fetch.ComputeHash("a", "b"))
	})

	t.Run("depends on order", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, fetch.ComputeHash("a", "b"), fetch.ComputeHash("b", "a"))
	})

	t.Run("depends on file boundaries", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, fetch.ComputeHash("ab", "c"), fetch.ComputeHash("a", "bc"))
	})

	t.Run("is lowercase hex", func(t *testing.T) {
		t.Parallel()

		assert.Regexp(t, `^[0-9a-f]+$`, fetch.ComputeHash("var searchData=\n[\n];\n"))
	})
}
