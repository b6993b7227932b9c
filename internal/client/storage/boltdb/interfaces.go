package boltdb

import "github.com/iudanet/novelsync/internal/client/storage"

// Compile-time checks
var (
	_ storage.AuthStorage       = (*Storage)(nil)
	_ storage.LibraryStorage    = (*Storage)(nil)
	_ storage.ContentStorage    = (*Storage)(nil)
	_ storage.SyncConfigStorage = (*Storage)(nil)
)
