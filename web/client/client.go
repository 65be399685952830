package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"villa-backend/dtos"
)

// Client calls the villa API. Every call returns the API envelope; a
// non-nil error means the API could not be reached or answered garbage.
type Client struct {
	http    *resty.Client
	version string
	logger  *zap.Logger
}

func New(baseURL, version string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, version: version, logger: logger}
}

func (c *Client) path(format string, args ...any) string {
	return "/api/" + c.version + fmt.Sprintf(format, args...)
}

func (c *Client) send(ctx context.Context, method, path, token string, body any) (*dtos.APIResponse, error) {
	var envelope dtos.APIResponse
	req := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("api call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, err
	}

	// A body that is not an envelope (proxy error page, empty 401) still
	// yields a usable failure.
	if envelope.StatusCode == 0 {
		envelope.StatusCode = resp.StatusCode()
		envelope.IsSuccessful = resp.StatusCode() < 400
	}
	if resp.StatusCode() >= 400 {
		envelope.IsSuccessful = false
		c.logger.Warn("api call rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Strings("errors", envelope.ErrorMessages),
		)
	}
	return &envelope, nil
}

// DecodeResult converts the loosely typed Result of an envelope into T.
func DecodeResult[T any](envelope *dtos.APIResponse) (T, error) {
	var out T
	raw, err := json.Marshal(envelope.Result)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, req dtos.LoginRequestDTO) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPost, c.path("/UserAuth/Login"), "", req)
}

func (c *Client) Register(ctx context.Context, req dtos.RegistrationRequestDTO) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPost, c.path("/UserAuth/Register"), "", req)
}

func (c *Client) GetVillas(ctx context.Context, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodGet, c.path("/VillaAPI"), token, nil)
}

func (c *Client) GetVilla(ctx context.Context, id uint, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodGet, c.path("/VillaAPI/%d", id), token, nil)
}

func (c *Client) CreateVilla(ctx context.Context, dto dtos.VillaCreateDTO, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPost, c.path("/VillaAPI"), token, dto)
}

func (c *Client) UpdateVilla(ctx context.Context, dto dtos.VillaUpdateDTO, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPut, c.path("/VillaAPI/%d", dto.ID), token, dto)
}

func (c *Client) DeleteVilla(ctx context.Context, id uint, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodDelete, c.path("/VillaAPI/%d", id), token, nil)
}

func (c *Client) GetVillaNumbers(ctx context.Context, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodGet, c.path("/VillaNumberAPI"), token, nil)
}

func (c *Client) GetVillaNumber(ctx context.Context, villaNo int, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodGet, c.path("/VillaNumberAPI/%d", villaNo), token, nil)
}

func (c *Client) CreateVillaNumber(ctx context.Context, dto dtos.VillaNumberCreateDTO, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPost, c.path("/VillaNumberAPI"), token, dto)
}

func (c *Client) UpdateVillaNumber(ctx context.Context, dto dtos.VillaNumberUpdateDTO, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodPut, c.path("/VillaNumberAPI/%d", dto.VillaNo), token, dto)
}

func (c *Client) DeleteVillaNumber(ctx context.Context, villaNo int, token string) (*dtos.APIResponse, error) {
	return c.send(ctx, http.MethodDelete, c.path("/VillaNumberAPI/%d", villaNo), token, nil)
}
