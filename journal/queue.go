package journal

import (
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

var ErrQueueEmpty = errors.New("journal: queue is empty")

// Queue is a FIFO of Records stored under a key prefix. The metadata key
// holds the head and tail indexes as two big endian uint64.
type Queue struct {
	Prefix []byte // Only iterate over this given prefix
	db     *badger.DB
}

func (q *Queue) meta() []byte {
	return append(append([]byte{}, q.Prefix...), []byte("queue_metadata")...)
}

func (q *Queue) itemKey(idx []byte) []byte {
	return append(append([]byte{}, q.Prefix...), idx...)
}

// NewQueue opens the queue under prefix, creating it if needed
// prefix e.g. "session:id:journal"
func NewQueue(db *badger.DB, prefix []byte) (*Queue, error) {
	q := &Queue{db: db, Prefix: prefix}
	err := q.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(q.meta())
		if err == badger.ErrKeyNotFound {
			ptrb := make([]byte, 16) // 2 uint64
			return txn.Set(q.meta(), ptrb)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Push writes r at the head of the queue and increments the head pointer
func (q *Queue) Push(r *Record) error {
	return q.db.Update(func(txn *badger.Txn) error {
		serialized, err := cbor.Marshal(r)
		if err != nil {
			return err
		}
		i, err := txn.Get(q.meta())
		if err != nil {
			return err
		}
		metadata, err := i.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Set(q.itemKey(metadata[:8]), serialized); err != nil {
			return err
		}
		qhead := binary.BigEndian.Uint64(metadata[:8])
		binary.BigEndian.PutUint64(metadata[:8], qhead+1)
		return txn.Set(q.meta(), metadata)
	})
}

// Peek returns the oldest record without removing it
func (q *Queue) Peek() (*Record, error) {
	r := new(Record)
	err := q.db.View(func(txn *badger.Txn) error {
		i, err := txn.Get(q.meta())
		if err != nil {
			return err
		}
		return i.Value(func(metadata []byte) error {
			head := binary.BigEndian.Uint64(metadata[:8])
			tail := binary.BigEndian.Uint64(metadata[8:])
			if head == tail {
				return ErrQueueEmpty
			}
			i, err := txn.Get(q.itemKey(metadata[8:]))
			if err != nil {
				return err
			}
			return i.Value(func(b []byte) error {
				return cbor.Unmarshal(b, r)
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Pop removes and returns the oldest record
func (q *Queue) Pop() (*Record, error) {
	r := new(Record)
	err := q.db.Update(func(txn *badger.Txn) error {
		i, err := txn.Get(q.meta())
		if err != nil {
			return err
		}
		metadata, err := i.ValueCopy(nil)
		if err != nil {
			return err
		}
		head := binary.BigEndian.Uint64(metadata[:8])
		tail := binary.BigEndian.Uint64(metadata[8:])
		if head == tail {
			return ErrQueueEmpty
		}

		itemKey := q.itemKey(metadata[8:])
		i, err = txn.Get(itemKey)
		if err != nil {
			return err
		}
		if err := i.Value(func(b []byte) error {
			return cbor.Unmarshal(b, r)
		}); err != nil {
			return err
		}
		if err := txn.Delete(itemKey); err != nil {
			return err
		}
		binary.BigEndian.PutUint64(metadata[8:], tail+1)
		return txn.Set(q.meta(), metadata)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of queued records
func (q *Queue) Len() (int, error) {
	n := 0
	err := q.db.View(func(txn *badger.Txn) error {
		i, err := txn.Get(q.meta())
		if err != nil {
			return err
		}
		return i.Value(func(metadata []byte) error {
			n = int(binary.BigEndian.Uint64(metadata[:8]) - binary.BigEndian.Uint64(metadata[8:]))
			return nil
		})
	})
	return n, err
}

// All returns every queued record, oldest first
func (q *Queue) All() ([]*Record, error) {
	records := make([]*Record, 0)
	err := q.db.View(func(txn *badger.Txn) error {
		i, err := txn.Get(q.meta())
		if err != nil {
			return err
		}
		metadata, err := i.ValueCopy(nil)
		if err != nil {
			return err
		}
		head := binary.BigEndian.Uint64(metadata[:8])
		idx := make([]byte, 8)
		for n := binary.BigEndian.Uint64(metadata[8:]); n < head; n++ {
			binary.BigEndian.PutUint64(idx, n)
			i, err := txn.Get(q.itemKey(idx))
			if err != nil {
				return err
			}
			r := new(Record)
			if err := i.Value(func(b []byte) error {
				return cbor.Unmarshal(b, r)
			}); err != nil {
				return err
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
