// Package client 是结算服务调用 shipping-service 的客户端。
package client

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"shipfee/internal/pkg/httpclient"
	"shipfee/internal/service/shipping/application"
)

// QuoteClient 调用 /shipping/quote
type QuoteClient struct {
	http    *httpclient.Client
	baseURL string
}

// NewQuoteClient 创建客户端，baseURL 形如 http://shipping-service:8086
func NewQuoteClient(http *httpclient.Client, baseURL string) *QuoteClient {
	return &QuoteClient{http: http, baseURL: strings.TrimRight(baseURL, "/")}
}

// Quote 请求整单运费
func (c *QuoteClient) Quote(ctx context.Context, req *application.QuoteRequest) (*application.QuoteResponse, error) {
	var resp application.QuoteResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/shipping/quote", req, &resp); err != nil {
		return nil, errors.Wrap(err, "shipping quote")
	}
	return &resp, nil
}
