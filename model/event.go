// model/event.go
package model

import "time"

// EventType names follow the contract events the web client listens for.
type EventType string

const (
	EventLiteratureMinted   EventType = "LiteratureMinted"
	EventBatchMinted        EventType = "BatchMinted"
	EventLiteratureVerified EventType = "LiteratureVerified"
	EventMetadataUpdated    EventType = "MetadataUpdated"
	EventTokenURIUpdated    EventType = "TokenURIUpdated"
	EventTokenTransferred   EventType = "TokenTransferred"
	EventAddressBlacklisted EventType = "AddressBlacklisted"
	EventRoleGranted        EventType = "RoleGranted"
	EventRoleRevoked        EventType = "RoleRevoked"
	EventRoyaltyUpdated     EventType = "RoyaltyUpdated"
	EventRoyaltyAccrued     EventType = "RoyaltyAccrued"
	EventRoyaltiesWithdrawn EventType = "RoyaltiesWithdrawn"
	EventMintingPaused      EventType = "MintingPaused"
	EventMintingUnpaused    EventType = "MintingUnpaused"
	EventEmergencyWithdraw  EventType = "EmergencyWithdraw"
)

// LedgerEvent is appended in the same transaction as the state change it
// reports, so the event log never references uncommitted state.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TokenID   *int64    `json:"token_id,omitempty"`
	Actor     string    `json:"actor"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
