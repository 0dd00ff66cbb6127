package model

import "time"

// Rejection describes a transaction refused by admission, as stored in ClickHouse.
type Rejection struct {
	Network   string
	TxID      string
	Reason    string
	Message   string
	VSize     uint64
	Fee       uint64
	Height    uint32
	CheckedAt time.Time
}

// SpentOutput describes a transaction output as stored in ClickHouse.
type SpentOutput struct {
	Network     string
	TxID        string
	Index       uint32
	Value       uint64
	ScriptHex   string
	BlockHeight uint64
}
