package pipedrive

import "encoding/json"

// listDealsResponse is the paginated /deals envelope.
type listDealsResponse struct {
	Success        bool            `json:"success"`
	Data           []dealRecord    `json:"data"`
	AdditionalData *additionalData `json:"additional_data"`
}

type additionalData struct {
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Start                 int  `json:"start"`
	Limit                 int  `json:"limit"`
	MoreItemsInCollection bool `json:"more_items_in_collection"`
	NextStart             int  `json:"next_start"`
}

type dealRecord struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Value      json.Number `json:"value"`
	Currency   string      `json:"currency"`
	Status     string      `json:"status"`
	AddTime    string      `json:"add_time"`
	UpdateTime string      `json:"update_time"`
}

// getDealResponse is the single-deal envelope. Data is decoded as a raw map
// because custom fields appear as opaque hash keys alongside the core fields.
type getDealResponse struct {
	Success bool                       `json:"success"`
	Data    map[string]json.RawMessage `json:"data"`
}
