// Package journal keeps a persistent trace of the renderer calls issued
// during each session, for diagnosing lifecycle ordering problems on
// devices without a debugger attached.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aarnaud/vkwsamples/bridge"
	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/katzenpost/hpqc/rand"
	"gopkg.in/op/go-logging.v1"
)

const (
	DefaultMaxRecords  = 4096
	DefaultMaxSessions = 16
)

var (
	ErrNoSession       = errors.New("journal: no session started")
	ErrSessionNotFound = errors.New("journal: session not found")
	Version            = []byte("0.0.1")
)

func versionKey() []byte {
	return []byte("journal_version")
}

func sessionsKey() []byte {
	return []byte("sessions")
}

func sessionPrefix(id uint64) []byte {
	return []byte(fmt.Sprintf("session:%d:", id))
}

func queuePrefix(id uint64) []byte {
	return []byte(fmt.Sprintf("session:%d:journal", id))
}

// Options bound the size of the journal
type Options struct {
	MaxRecords  int
	MaxSessions int
}

// Journal records renderer calls in a badger database, one queue per
// session.
type Journal struct {
	sync.Mutex

	db   *badger.DB
	opts Options

	session *Session
	q       *Queue
	seq     uint64
}

// Open opens the journal database in dir. An empty dir keeps the journal
// in memory.
func Open(dir string, opts Options, log *logging.Logger) (*Journal, error) {
	bo := badger.DefaultOptions(dir).WithIndexCacheSize(1 << 20).WithSyncWrites(true)
	if dir == "" {
		bo = bo.WithInMemory(true)
	}
	if log != nil {
		bo = bo.WithLogger(log)
	} else {
		bo = bo.WithLogger(nil)
	}
	db, err := badger.Open(bo)
	if err != nil {
		return nil, err
	}
	j, err := New(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// New returns a Journal stored in db, initializing it if needed
func New(db *badger.DB, opts Options) (*Journal, error) {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = DefaultMaxRecords
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	j := &Journal{db: db, opts: opts}
	err := j.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(versionKey())
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		idx, err := cbor.Marshal(make(map[uint64]Session))
		if err != nil {
			return err
		}
		if err := txn.Set(sessionsKey(), idx); err != nil {
			return err
		}
		return txn.Set(versionKey(), Version)
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

func getSessions(txn *badger.Txn) (map[uint64]Session, error) {
	sessions := make(map[uint64]Session)
	i, err := txn.Get(sessionsKey())
	if err != nil {
		return nil, err
	}
	err = i.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &sessions)
	})
	return sessions, err
}

func putSessions(txn *badger.Txn, sessions map[uint64]Session) error {
	b, err := cbor.Marshal(sessions)
	if err != nil {
		return err
	}
	return txn.Set(sessionsKey(), b)
}

// Begin starts journaling a new session for the sample and prunes the
// oldest sessions beyond MaxSessions.
func (j *Journal) Begin(d bridge.SampleDescriptor) error {
	j.Lock()
	defer j.Unlock()

	s := Session{ID: rand.NewMath().Uint64(), SampleID: d.ID, SampleName: d.Name, Started: time.Now().UnixNano()}
	var expired []uint64
	err := j.db.Update(func(txn *badger.Txn) error {
		sessions, err := getSessions(txn)
		if err != nil {
			return err
		}
		sessions[s.ID] = s
		expired = oldest(sessions, len(sessions)-j.opts.MaxSessions)
		for _, id := range expired {
			delete(sessions, id)
		}
		return putSessions(txn, sessions)
	})
	if err != nil {
		return err
	}
	for _, id := range expired {
		if err := j.drop(sessionPrefix(id)); err != nil {
			return err
		}
	}

	q, err := NewQueue(j.db, queuePrefix(s.ID))
	if err != nil {
		return err
	}
	j.session = &s
	j.q = q
	j.seq = 0
	return nil
}

// drop deletes every key under prefix
func (j *Journal) drop(prefix []byte) error {
	keys := make([][]byte, 0)
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}
	wb := j.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// oldest returns the ids of the n oldest sessions
func oldest(sessions map[uint64]Session, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	all := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, k int) bool { return all[i].Started < all[k].Started })
	ids := make([]uint64, 0, n)
	for _, s := range all[:n] {
		ids = append(ids, s.ID)
	}
	return ids
}

// Current returns the session being journaled, if any
func (j *Journal) Current() (Session, bool) {
	j.Lock()
	defer j.Unlock()
	if j.session == nil {
		return Session{}, false
	}
	return *j.session, true
}

// Record appends a renderer call to the current session, dropping the
// oldest records beyond MaxRecords.
func (j *Journal) Record(call string, arg int64, ok bool) error {
	j.Lock()
	defer j.Unlock()

	if j.q == nil {
		return ErrNoSession
	}
	j.seq++
	r := &Record{Seq: j.seq, Call: call, Arg: arg, OK: ok, At: time.Now().UnixNano()}
	if err := j.q.Push(r); err != nil {
		return err
	}
	n, err := j.q.Len()
	if err != nil {
		return err
	}
	for ; n > j.opts.MaxRecords; n-- {
		if _, err := j.q.Pop(); err != nil {
			return err
		}
	}
	return nil
}

// Sessions returns the journaled sessions, oldest first
func (j *Journal) Sessions() ([]Session, error) {
	var sessions map[uint64]Session
	err := j.db.View(func(txn *badger.Txn) error {
		var err error
		sessions, err = getSessions(txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	all := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, k int) bool { return all[i].Started < all[k].Started })
	return all, nil
}

// Records returns the records journaled for a session, oldest first
func (j *Journal) Records(id uint64) ([]*Record, error) {
	found := false
	err := j.db.View(func(txn *badger.Txn) error {
		sessions, err := getSessions(txn)
		if err != nil {
			return err
		}
		_, found = sessions[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	q, err := NewQueue(j.db, queuePrefix(id))
	if err != nil {
		return nil, err
	}
	return q.All()
}
