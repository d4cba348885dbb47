// Package kvbolt connects KeyValues with bolt buckets.
//
// A bucket is read lazily through a cursor, so a KeyValues built from it
// only opens a read transaction once the first pair is pulled,
// and releases it as soon as the pairs are exhausted or the KeyValues is closed.
package kvbolt

import (
	"bytes"
	"context"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/kvkit/pkg/kvkit"
)

const ErrBucketNotFound errorkit.Error = "bolt bucket not found"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Bucket returns the pairs of the named bucket in key order.
//
// Keys and values are copied out of the read transaction,
// they stay valid after the transaction is gone.
// Nested buckets are skipped.
// A missing bucket is reported as ErrBucketNotFound by the terminal operation.
func Bucket(ctx context.Context, db *bolt.DB, name []byte) *kvkit.KeyValues[string, []byte] {
	p := &cursorProducer{ctx: ctx, db: db, name: bytes.Clone(name)}
	return kvkit.NewKeyValues(kvkit.NewCollection[kvkit.Pair[string, []byte]](p))
}

// Store drains kv and writes its pairs into the named bucket in a single update transaction.
// The bucket is created when it doesn't exist yet.
// When kv repeats a key, the last value is the one stored.
func Store(ctx context.Context, db *bolt.DB, name []byte, kv *kvkit.KeyValues[string, []byte]) error {
	pairs, err := kv.ToPairs()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Debug(ctx, "storing pairs into bolt bucket",
		logging.Field("bucket", string(name)),
		logging.Field("count", len(pairs)))
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(name)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			if err := b.Put([]byte(p.Key), p.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// StoreRecord stores each field of r as a JSON document under the field's name.
func StoreRecord(ctx context.Context, db *bolt.DB, name []byte, r *kvkit.Record) error {
	return Store(ctx, db, name, kvkit.TryMapValues(kvkit.FromRecord(r), jsonAPI.Marshal))
}

// LoadRecord reads back a bucket written by StoreRecord.
// The fields come in key order, since that is the order bolt keeps them in.
func LoadRecord(ctx context.Context, db *bolt.DB, name []byte) *kvkit.KeyValues[string, any] {
	return kvkit.TryMapValues(Bucket(ctx, db, name), kvkit.UnmarshalJSONValue)
}

type cursorProducer struct {
	ctx  context.Context
	db   *bolt.DB
	name []byte

	tx     *bolt.Tx
	cursor *bolt.Cursor
	done   bool
}

func (p *cursorProducer) Next() (kvkit.Pair[string, []byte], bool, error) {
	var zero kvkit.Pair[string, []byte]
	if p.done {
		return zero, false, nil
	}
	if err := p.ctx.Err(); err != nil {
		p.done = true
		return zero, false, err
	}
	var k, v []byte
	if p.cursor == nil {
		if err := p.begin(); err != nil {
			p.done = true
			return zero, false, err
		}
		k, v = p.cursor.First()
	} else {
		k, v = p.cursor.Next()
	}
	for k != nil && v == nil { // nested bucket
		k, v = p.cursor.Next()
	}
	if k == nil {
		p.done = true
		return zero, false, p.rollback()
	}
	return kvkit.Pair[string, []byte]{Key: string(k), Value: bytes.Clone(v)}, true, nil
}

func (p *cursorProducer) begin() error {
	tx, err := p.db.Begin(false)
	if err != nil {
		return err
	}
	p.tx = tx
	logger.Debug(p.ctx, "bolt read transaction opened", logging.Field("bucket", string(p.name)))
	b := tx.Bucket(p.name)
	if b == nil {
		return errorkit.Merge(ErrBucketNotFound, p.rollback())
	}
	p.cursor = b.Cursor()
	return nil
}

func (p *cursorProducer) rollback() error {
	if p.tx == nil {
		return nil
	}
	tx := p.tx
	p.tx, p.cursor = nil, nil
	err := tx.Rollback()
	logger.Debug(p.ctx, "bolt read transaction closed",
		logging.Field("bucket", string(p.name)),
		logging.ErrField(err))
	return err
}

func (p *cursorProducer) Close() error {
	p.done = true
	return p.rollback()
}
