package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeftChildOfRoot(t *testing.T) {
	p := LeftChildOfRoot(8)
	require.False(t, p.IsRoot())
	require.True(t, p.IsLeftChild())
}

func TestMoveToSiblingInvolution(t *testing.T) {
	p := LeftChildOfRoot(8)
	before := p.Encode()

	p.MoveToSibling()
	require.False(t, p.IsLeftChild())

	p.MoveToSibling()
	require.Equal(t, before, p.Encode())
}

func TestFromContextToRoot(t *testing.T) {
	ctLen := 8
	ct := []byte{0x41, 0x04, 0xff, 0x17, 0x5f, 0xa9, 0x17, 0xab}

	q := FromContext(ctLen, ct)
	depth := ctLen * 8
	for i := 0; i < depth; i++ {
		require.False(t, q.IsRoot())
		q.MoveToParent()
	}
	require.True(t, q.IsRoot())

	for _, b := range q.fromLeft {
		require.Zero(t, b)
	}
}

func TestEncodeInjective(t *testing.T) {
	a := LeftChildOfRoot(8)
	b := LeftChildOfRoot(8).MoveToSibling()
	require.NotEqual(t, a.Encode(), b.Encode())

	c := FromContext(8, make([]byte, 8))
	d := LeftChildOfRoot(8)
	require.NotEqual(t, c.Encode(), d.Encode())
}

func TestIsRootPanicsOnIsLeftChild(t *testing.T) {
	root := LeftChildOfRoot(8)
	root.MoveToParent()
	require.True(t, root.IsRoot())
	require.Panics(t, func() { root.IsLeftChild() })
}
