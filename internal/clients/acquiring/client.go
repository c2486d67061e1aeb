package acquiring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/config"
	"github.com/samandr77/microservices/acquiring/pkg/security"
	"github.com/samandr77/microservices/acquiring/pkg/transport"
)

const (
	yandexPayMethod = "YandexPay"
	qrDataPayload   = "PAYLOAD"
	paySourceSDK    = "SDK"
)

const (
	defaultRetryWaitMin = 200 * time.Millisecond
	defaultRetryWaitMax = 2 * time.Second
)

// Client talks to the Tinkoff Acquiring API v2.
type Client struct {
	cfg config.Acquiring
	c   *http.Client
}

func NewClient(cfg config.Acquiring) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = defaultRetryWaitMin
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(http.DefaultTransport)
	retryClient.Logger = nil

	// Only transport failures are retried: a status answer must not be replayed.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		cfg: cfg,
		c:   retryClient.StandardClient(),
	}
}

// LoadCards returns cards saved for the customer (GetCardList).
func (c *Client) LoadCards(ctx context.Context, customerKey string) ([]entity.PaymentCard, error) {
	reqData := GetCardListRequest{
		TerminalKey: c.cfg.TerminalKey,
		CustomerKey: customerKey,
	}

	body, err := c.post(ctx, "GetCardList", reqData)
	if err != nil {
		return nil, err
	}

	// Success is a bare array, failure is the usual envelope.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		var respData baseResponse

		err = json.Unmarshal(body, &respData)
		if err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}

		if err = respData.err("GetCardList"); err != nil {
			return nil, err
		}

		return []entity.PaymentCard{}, nil
	}

	var respData []Card

	err = json.Unmarshal(body, &respData)
	if err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	cards := make([]entity.PaymentCard, 0, len(respData))
	for _, v := range respData {
		cards = append(cards, v.toEntity())
	}

	return cards, nil
}

// RemoveCard deactivates the customer's card.
func (c *Client) RemoveCard(ctx context.Context, customerKey, cardID string) error {
	reqData := RemoveCardRequest{
		TerminalKey: c.cfg.TerminalKey,
		CustomerKey: customerKey,
		CardID:      cardID,
	}

	var respData RemoveCardResponse

	return c.call(ctx, "RemoveCard", reqData, &respData)
}

func (c *Client) GetPaymentState(ctx context.Context, paymentID string) (entity.PaymentState, error) {
	reqData := GetStateRequest{
		TerminalKey: c.cfg.TerminalKey,
		PaymentID:   paymentID,
	}

	var respData paymentResponse

	err := c.call(ctx, "GetState", reqData, &respData)
	if err != nil {
		return entity.PaymentState{}, err
	}

	return respData.toState(), nil
}

func (c *Client) InitPayment(ctx context.Context, order entity.InitOrder) (entity.InitPayload, error) {
	reqData := InitRequest{
		TerminalKey: c.cfg.TerminalKey,
		Amount:      toKopecks(order.Amount),
		OrderID:     order.OrderID,
		Description: order.Description,
		CustomerKey: order.CustomerKey,
		Recurrent:   boolFlag(order.Recurrent),
	}

	var respData InitResponse

	err := c.call(ctx, "Init", reqData, &respData)
	if err != nil {
		return entity.InitPayload{}, err
	}

	return entity.InitPayload{
		PaymentID:  string(respData.PaymentID),
		OrderID:    respData.OrderID,
		Amount:     fromKopecks(respData.Amount),
		Status:     entity.PaymentStatus(respData.Status),
		PaymentURL: respData.PaymentURL,
	}, nil
}

// Charge performs a recurrent payment with the card registered under rebillID.
func (c *Client) Charge(ctx context.Context, paymentID, rebillID string) (entity.ChargePayload, error) {
	reqData := ChargeRequest{
		TerminalKey: c.cfg.TerminalKey,
		PaymentID:   paymentID,
		RebillID:    rebillID,
	}

	var respData paymentResponse

	err := c.call(ctx, "Charge", reqData, &respData)
	if err != nil {
		return entity.ChargePayload{}, err
	}

	state := respData.toState()

	return entity.ChargePayload{
		Status: state.Status,
		State:  state,
	}, nil
}

// SBPPayload returns the NSPK link for paying the payment with SBP.
func (c *Client) SBPPayload(ctx context.Context, paymentID string) (entity.SBPPayload, error) {
	reqData := GetQrRequest{
		TerminalKey: c.cfg.TerminalKey,
		PaymentID:   paymentID,
		DataType:    qrDataPayload,
	}

	var respData GetQrResponse

	err := c.call(ctx, "GetQr", reqData, &respData)
	if err != nil {
		return entity.SBPPayload{}, err
	}

	return entity.SBPPayload{
		PaymentID: string(respData.PaymentID),
		Payload:   respData.Data,
	}, nil
}

func (c *Client) TerminalPayMethods(ctx context.Context) ([]entity.TerminalPayMethod, error) {
	q := make(url.Values)
	q.Set("TerminalKey", c.cfg.TerminalKey)
	q.Set("PaySource", paySourceSDK)

	reqURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/TerminalPayMethods?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var respData TerminalPayMethodsResponse

	err = json.Unmarshal(body, &respData)
	if err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if err = respData.err("TerminalPayMethods"); err != nil {
		return nil, err
	}

	methods := make([]entity.TerminalPayMethod, 0, len(respData.TerminalInfo.Paymethods))
	for _, v := range respData.TerminalInfo.Paymethods {
		methods = append(methods, v.toEntity())
	}

	return methods, nil
}

// YandexPayMethod returns YandexPay merchant params or ErrMethodUnavailable if the terminal has no YandexPay.
func (c *Client) YandexPayMethod(ctx context.Context) (entity.YandexPayMethod, error) {
	methods, err := c.TerminalPayMethods(ctx)
	if err != nil {
		return entity.YandexPayMethod{}, fmt.Errorf("get terminal pay methods: %w", err)
	}

	for _, m := range methods {
		if m.PayMethod != yandexPayMethod {
			continue
		}

		return entity.YandexPayMethod{
			MerchantID:     m.Params["MerchantId"],
			MerchantName:   m.Params["MerchantName"],
			MerchantOrigin: m.Params["MerchantOrigin"],
			ShowcaseID:     m.Params["ShowcaseId"],
		}, nil
	}

	return entity.YandexPayMethod{}, fmt.Errorf("%w: %s", entity.ErrMethodUnavailable, yandexPayMethod)
}

func (c *Client) call(ctx context.Context, method string, reqData any, respData response) error {
	body, err := c.post(ctx, method, reqData)
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, respData)
	if err != nil {
		return fmt.Errorf("unmarshal %s response: %w", method, err)
	}

	return respData.err(method)
}

func (c *Client) post(ctx context.Context, method string, reqData any) ([]byte, error) {
	params, err := security.Sign(c.cfg.Password, reqData)
	if err != nil {
		return nil, fmt.Errorf("sign %s request: %w", method, err)
	}

	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	reqURL := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + method

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response status %d:\n%s", resp.StatusCode, body)
	}

	return body, nil
}
