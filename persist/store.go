// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package persist snapshots a memo.Memo's state into a single bolt.DB key,
// msgpack encoded. It has no effect on how the in-process memo behaves:
// Save/Load only cross a process boundary, so a freshly Load-ed memo picks
// up exactly where the saved one left off.
package persist

import (
	"github.com/boltdb/bolt"
	"gopkg.in/vmihailenco/msgpack.v2"

	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/property"
)

var bucketName = []byte("cascade_memo")
var snapshotKey = []byte("snapshot")

// Store is a single-file bolt.DB snapshot store, one memo per file.
// Grounded in spirit on optd-persistent-memo's backend_manager, which
// shards the same group/expression/predicate/winner state across several
// SQL tables; this store keeps it as one encoded blob instead, since a
// bolt.DB has no query surface to exploit by splitting it up.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a bolt.DB file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying bolt.DB file.
func (s *Store) Close() error { return s.db.Close() }

// Save encodes m's full state and writes it as the store's single
// snapshot, replacing whatever was saved before.
func (s *Store) Save(m *memo.Memo) error {
	data, err := msgpack.Marshal(m.Snapshot())
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put(snapshotKey, data)
	})
}

// Load decodes the store's snapshot back into a *memo.Memo, re-registering
// builders the same way memo.New requires. It returns a freshly built
// empty memo with builders registered if the store has never been saved
// to.
func (s *Store) Load(builders ...property.Builder) (*memo.Memo, error) {
	var snap memo.Snapshot
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		data := b.Get(snapshotKey)
		if data == nil {
			return nil
		}
		found = true
		return msgpack.Unmarshal(data, &snap)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return memo.New(builders...), nil
	}
	return memo.Restore(snap, builders...), nil
}
