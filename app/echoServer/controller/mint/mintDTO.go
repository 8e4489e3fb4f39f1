package mint

type MintReq struct {
	Recipient  string `json:"recipient" validate:"required"`
	URI        string `json:"uri" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Year       int    `json:"year" validate:"required,gt=0"`
	Category   string `json:"category" validate:"required"`
	WorkType   string `json:"work_type" validate:"required"`
	PaymentWei int64  `json:"payment_wei" validate:"gte=0"`
}

type BatchEntry struct {
	Recipient string `json:"recipient" validate:"required"`
	URI       string `json:"uri" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Year      int    `json:"year" validate:"required,gt=0"`
	Category  string `json:"category" validate:"required"`
	WorkType  string `json:"work_type" validate:"required"`
}

type BatchMintReq struct {
	Entries []BatchEntry `json:"entries" validate:"required,dive"`
}
