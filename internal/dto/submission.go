package dto

// SubmissionPayload is the JSON document the Telegram mini-app sends through
// WebApp.sendData. Network is only a catalog grouping and is not written to
// the ledger.
type SubmissionPayload struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Network string `json:"network"`
	Bundle  string `json:"bundle"`
	Price   string `json:"price"`
}
