package sslcommerz

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rjmahfuztech/nesthunt/util/httpx"
)

const sandboxSessionURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"

type httpRepo struct {
	storeID  string
	storePwd string
	endpoint string
	client   *http.Client
}

func NewHTTP(storeID, storePwd string) Repo {
	return &httpRepo{
		storeID:  storeID,
		storePwd: storePwd,
		endpoint: sandboxSessionURL,
		client:   httpx.Client(),
	}
}

func (r *httpRepo) CreateSession(req CreateSessionReq) (*CreateSessionResp, error) {
	form := url.Values{}
	form.Set("store_id", r.storeID)
	form.Set("store_passwd", r.storePwd)
	form.Set("tran_id", req.TranID)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", req.CustomerAddr)
	form.Set("product_category", "rental")
	form.Set("product_name", "Apartment rent")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")

	resp, err := r.client.Post(r.endpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sslcommerz session failed: %s", resp.Status)
	}

	var out struct {
		Status         string `json:"status"`
		SessionKey     string `json:"sessionkey"`
		GatewayPageURL string `json:"GatewayPageURL"`
		FailedReason   string `json:"failedreason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		return nil, errors.New("sslcommerz: empty session status")
	}

	return &CreateSessionResp{
		Status:         out.Status,
		SessionKey:     out.SessionKey,
		GatewayPageURL: out.GatewayPageURL,
		FailedReason:   out.FailedReason,
	}, nil
}
