package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	AccountStore *badgerhold.Store
	ConfigStore  *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. Accounts and daemon
// settings live in dedicated directories.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	accountDb, err := createDb(baseDbDir+"/accounts", logger)
	if err != nil {
		return nil, fmt.Errorf("opening accounts db: %w", err)
	}

	configDb, err := createDb(baseDbDir+"/config", logger)
	if err != nil {
		return nil, fmt.Errorf("opening config db: %w", err)
	}

	return &DbManager{
		AccountStore: accountDb,
		ConfigStore:  configDb,
	}, nil
}

// Close closes the underlying badger stores.
func (d *DbManager) Close() error {
	if err := d.AccountStore.Close(); err != nil {
		return err
	}
	return d.ConfigStore.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
