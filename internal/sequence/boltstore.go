package sequence

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "sequence"
	counterKey = "receiptCounter"
)

// BoltStore keeps the counter in a bbolt database. Writes happen inside a
// single transaction, so it is safe to share across processes where the
// plain file store is not.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening counter db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Load returns the stored counter, or the baseline when the key is absent
// or its contents do not parse.
func (b *BoltStore) Load() (Counter, error) {
	c := Counter{LastReceiptNumber: Baseline}
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(counterKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &c); err != nil {
			c = Counter{LastReceiptNumber: Baseline}
		}
		return nil
	})
	if err != nil {
		return Counter{LastReceiptNumber: Baseline}, nil
	}
	return c, nil
}

// Save writes the counter inside a single update transaction.
func (b *BoltStore) Save(c Counter) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling counter: %w", err)
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(counterKey), data)
	})
}

// Close closes the underlying database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
