package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com a API REST do Asaas (cobrança recorrente dos tenants).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// --------- Payloads ---------

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Subscription struct {
	ID          string  `json:"id"`
	Customer    string  `json:"customer"`
	Value       float64 `json:"value"`
	Cycle       string  `json:"cycle"`
	NextDueDate string  `json:"nextDueDate"`
	Status      string  `json:"status"`
}

type apiError struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

// --------- Operations ---------

func (c *Client) CreateCustomer(
	ctx context.Context,
	name, email, phone string,
) (*Customer, error) {

	payload := map[string]any{
		"name":        name,
		"email":       email,
		"mobilePhone": phone,
	}

	var out Customer
	if err := c.post(ctx, "/customers", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSubscription(
	ctx context.Context,
	customerID string,
	value float64,
	nextDueDate string,
	description string,
) (*Subscription, error) {

	payload := map[string]any{
		"customer":    customerID,
		"billingType": "UNDEFINED",
		"value":       value,
		"cycle":       "MONTHLY",
		"nextDueDate": nextDueDate,
		"description": description,
	}

	var out Subscription
	if err := c.post(ctx, "/subscriptions", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelSubscription(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.baseURL+"/subscriptions/"+id,
		nil,
	)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// --------- HTTP plumbing ---------

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && len(ae.Errors) > 0 {
			return fmt.Errorf("asaas: %s (%s)", ae.Errors[0].Description, ae.Errors[0].Code)
		}
		return fmt.Errorf("asaas: unexpected status %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
