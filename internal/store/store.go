// Package store is the data-access layer. One file per entity, every
// logically-atomic multi-statement write wrapped in a database
// transaction, and ownership always checked through the user's join
// tables before a row is touched.
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
