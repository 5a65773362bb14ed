package model

import "time"

// ShareEntry records one user granting another read access to a filing.
// Entries are owned by the record they are attached to; the sharing ledger
// additionally indexes them by recipient. Duplicates are allowed: sharing
// the same record to the same address twice produces two entries.
type ShareEntry struct {
	SharedAt    time.Time `json:"sharedAt"`
	ToUserEmail string    `json:"toUserEmail"`
}

// SharedFile is a recipient-side view of a share: a snapshot of the record
// at share time plus the sender and timestamp.
type SharedFile struct {
	SharedAt      time.Time    `json:"sharedAt"`
	FromUserEmail string       `json:"fromUserEmail"`
	FileDetails   FilingRecord `json:"fileDetails"`
}

// SharedRecord is an owner-side view: one share entry joined with the
// record it belongs to, for "shared by me" listings.
type SharedRecord struct {
	Entry  ShareEntry
	Record FilingRecord
}
