package sslcommerz

// CreateSessionReq carries everything the gateway needs to open a payment
// session. TranID must be reproducible from the order so the callback can be
// mapped back ("tnx_" + order id).
type CreateSessionReq struct {
	TranID        string
	Amount        float64
	Currency      string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	CustomerName  string
	CustomerPhone string
	CustomerAddr  string
}

type CreateSessionResp struct {
	Status         string
	SessionKey     string
	GatewayPageURL string
	FailedReason   string
}

type Repo interface {
	CreateSession(req CreateSessionReq) (*CreateSessionResp, error)
}
