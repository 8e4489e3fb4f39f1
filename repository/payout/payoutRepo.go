package payoutrepo

// SendReq asks the payout gateway to move funds to a chain address. The
// gateway is the external custodian of the service's hot wallet; the ledger
// only records the bookkeeping.
type SendReq struct {
	ExternalID  string
	Address     string
	AmountWei   int64
	Description string
}

type SendResp struct {
	PayoutID string
	Status   string
}

type Repo interface {
	Send(req SendReq) (*SendResp, error)
}
