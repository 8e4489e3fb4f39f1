package literature

type UpdateMetadataReq struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Year     int    `json:"year" validate:"required,gt=0"`
	Category string `json:"category" validate:"required"`
	WorkType string `json:"work_type" validate:"required"`
}

type UpdateURIReq struct {
	URI string `json:"uri" validate:"required"`
}

type TransferReq struct {
	To string `json:"to" validate:"required"`
}
