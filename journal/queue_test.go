package journal

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func memDB(t *testing.T) *badger.DB {
	opt := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opt)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestQueue(t *testing.T) {
	require := require.New(t)
	db := memDB(t)
	q, err := NewQueue(db, []byte("foo"))
	require.NoError(err)

	_, err = q.Peek()
	require.ErrorIs(err, ErrQueueEmpty)

	r := &Record{Seq: 1, Call: "init", Arg: 3, OK: true}
	require.NoError(q.Push(r))
	require.NoError(q.Push(&Record{Seq: 2, Call: "start", OK: true}))

	r2, err := q.Peek()
	require.NoError(err)
	require.Equal(r, r2)

	n, err := q.Len()
	require.NoError(err)
	require.Equal(2, n)

	all, err := q.All()
	require.NoError(err)
	require.Len(all, 2)
	require.Equal("start", all[1].Call)

	r3, err := q.Pop()
	require.NoError(err)
	require.Equal(r, r3)
	_, err = q.Pop()
	require.NoError(err)
	_, err = q.Pop()
	require.ErrorIs(err, ErrQueueEmpty)

	// reopening keeps the pointers
	q2, err := NewQueue(db, []byte("foo"))
	require.NoError(err)
	n, err = q2.Len()
	require.NoError(err)
	require.Zero(n)
	require.NoError(q2.Push(&Record{Seq: 3, Call: "destroy", OK: true}))
	all, err = q2.All()
	require.NoError(err)
	require.Len(all, 1)
	require.Equal(uint64(3), all[0].Seq)
}

func TestQueuePrefixesAreIndependent(t *testing.T) {
	require := require.New(t)
	db := memDB(t)
	a, err := NewQueue(db, []byte("a"))
	require.NoError(err)
	b, err := NewQueue(db, []byte("b"))
	require.NoError(err)

	require.NoError(a.Push(&Record{Call: "init"}))
	n, err := b.Len()
	require.NoError(err)
	require.Zero(n)
}
