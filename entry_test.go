package symdex_test

import (
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Node", "node"},
		{"numNodes", "numnodes"},
		{"~Node", "_7enode"},
		{"operator==", "operator_3d_3d"},
		{"Ogre::Node", "ogre_3a_3anode"},
		{"_getDerivedPosition", "_5fgetderivedposition"},
		{"a\tb", "a_09b"},
		{"Größe", "größe"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, symdex.NormalizeKey(tt.in))
		})
	}
}

func TestEntry_Validate(t *testing.T) {
	t.Parallel()

	ref := symdex.Reference{URL: "classOgre_1_1Node.html", Relative: true, Owner: "Ogre"}

	t.Run("valid entry", func(t *testing.T) {
		t.Parallel()
		e := &symdex.Entry{Key: "node", Label: "Node", References: []symdex.Reference{ref}}
		assert.NoError(t, e.Validate())
	})

	t.Run("key does not have to match the label", func(t *testing.T) {
		t.Parallel()
		e := &symdex.Entry{Key: "operator", Label: "operator==", References: []symdex.Reference{ref}}
		assert.NoError(t, e.Validate())
	})

	t.Run("requires key", func(t *testing.T) {
		t.Parallel()
		e := &symdex.Entry{Label: "Node", References: []symdex.Reference{ref}}
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(e.Validate()))
	})

	t.Run("requires label", func(t *testing.T) {
		t.Parallel()
		e := &symdex.Entry{Key: "node", References: []symdex.Reference{ref}}
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(e.Validate()))
	})

	t.Run("requires references", func(t *testing.T) {
		t.Parallel()
		e := &symdex.Entry{Key: "node", Label: "Node"}
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(e.Validate()))
	})
}
