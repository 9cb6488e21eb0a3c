package action

// BulkRequest carries one bulk action across one or more accounts with a
// single total amount to distribute. Amount stays textual until validation
// so failures can echo the caller's input unchanged.
type BulkRequest struct {
	AccountIDs      []string `json:"accountIds"`
	Amount          string   `json:"amount"`
	Comments        string   `json:"comments,omitempty"`
	NotifyPatron    bool     `json:"notifyPatron"`
	PaymentMethod   string   `json:"paymentMethod,omitempty"`
	TransactionInfo string   `json:"transactionInfo,omitempty"`
	ServicePointID  string   `json:"servicePointId,omitempty"`
	UserName        string   `json:"userName,omitempty"`
}
