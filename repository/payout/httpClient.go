package payoutrepo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vmmuthu31/EzhuthAI/util/httpx"
)

type httpRepo struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewHTTP(apiKey, baseURL string) Repo {
	return &httpRepo{apiKey: apiKey, baseURL: baseURL, client: httpx.Client()}
}

func (r *httpRepo) Send(req SendReq) (*SendResp, error) {
	body := map[string]any{
		"external_id": req.ExternalID,
		"address":     req.Address,
		"amount_wei":  req.AmountWei,
		"description": req.Description,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest("POST", r.baseURL+"/v1/payouts", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payout failed: %s", resp.Status)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("payout: empty payout id")
	}
	return &SendResp{PayoutID: out.ID, Status: out.Status}, nil
}
