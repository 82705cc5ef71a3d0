package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pontem-network/flashloan-loadgen/concurrent"
	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/metrics"
	"github.com/pontem-network/flashloan-loadgen/rw"
	"github.com/pontem-network/flashloan-loadgen/stats"
)

const (
	getAccount        = "GetAccount"
	encodeSubmission  = "EncodeSubmission"
	submitTransaction = "SubmitTransaction"
	getTransaction    = "GetTransaction"
	coinBalance       = "CoinBalance"
	ledgerInfo        = "LedgerInfo"

	// LedgerTimestampHeader is the header the node uses to report its
	// ledger time in microseconds
	LedgerTimestampHeader = "X-Aptos-Ledger-TimestampUsec"

	maxBodySize = 1 << 20
)

// Client is the interface to the REST api of a ledger node
type Client interface {
	// GetAccount returns the on-chain state of an account. It fails
	// with ErrAccountNotFound if the account does not exist
	GetAccount(ctx context.Context, addr Address) (AccountInfo, error)

	// EncodeSubmission returns the message the sender must sign for
	// the provided request
	EncodeSubmission(ctx context.Context, req TransactionRequest) ([]byte, error)

	// SubmitTransaction submits a signed transaction to the node
	SubmitTransaction(ctx context.Context, signed SignedTransaction) (PendingTransaction, error)

	// GetTransaction returns the current state of a transaction. It
	// fails with ErrTransactionNotFound if the node does not know it
	GetTransaction(ctx context.Context, hash string) (Transaction, error)

	// CoinBalance returns the balance of the account for the coin type
	CoinBalance(ctx context.Context, addr Address, coinType string) (uint64, error)

	// LedgerInfo returns the current state of the ledger
	LedgerInfo(ctx context.Context) (LedgerInfo, error)
}

// HttpClient is the basic interface for the
// underlying http client used by the NodeClient
type HttpClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Services are services required by the client
type Services struct {
	Logger  log.Logger
	Metrics *metrics.ServiceMetrics
}

// Props are the properties that define the behaviour of the client
type Props struct {
	URL         string
	Timeout     time.Duration
	RetryConfig concurrent.RetryConfig
}

// Deps are the required instantiated dependencies
// that a NodeClient requires
type Deps struct {
	Logger  log.Logger
	Client  HttpClient
	Metrics *metrics.ServiceMetrics
}

// NewClient creates a new node client
func NewClient(services *Services, props *Props) *NodeClient {
	return NewClientWithDeps(&Deps{
		Logger:  services.Logger,
		Client:  &http.Client{Timeout: props.Timeout},
		Metrics: services.Metrics,
	}, props)
}

// NewClientWithDeps creates a new client using the external
// dependencies provided
func NewClientWithDeps(deps *Deps, props *Props) *NodeClient {
	return &NodeClient{
		url:         strings.TrimSuffix(props.URL, "/"),
		client:      deps.Client,
		retryConfig: props.RetryConfig,
		logger:      deps.Logger.ForClass("ledger", "NodeClient"),
		metrics:     deps.Metrics,
		tracker: stats.NewMethodTracker(getAccount, encodeSubmission,
			submitTransaction, getTransaction, coinBalance, ledgerInfo),
	}
}

// NodeClient implements Client over http
type NodeClient struct {
	url         string
	client      HttpClient
	retryConfig concurrent.RetryConfig
	logger      log.Logger
	metrics     *metrics.ServiceMetrics
	tracker     *stats.MethodTracker
}

// Stats returns the request counts and latencies per endpoint
func (c *NodeClient) Stats() stats.Metrics {
	return c.tracker.Stats()
}

func (c *NodeClient) Name() string {
	return "ledger.NodeClient"
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// serverError is returned for 5xx responses so that reads are
// retried
type serverError struct {
	res *response
}

func (e serverError) Error() string {
	return fmt.Sprintf("node returned status %d", e.res.status)
}

func (c *NodeClient) request(
	ctx context.Context,
	method string,
	httpMethod string,
	path string,
	body interface{},
) (*response, error) {
	var payload []byte
	if body != nil {
		p, err := json.Marshal(body)
		if err != nil {
			return nil, errors.New(errors.ErrInternalError, err)
		}
		payload = p
	}

	retryConfig := c.retryConfig
	if httpMethod != http.MethodGet || retryConfig.Attempts == 0 {
		// a submitted but unacknowledged write cannot be retried
		// blindly
		retryConfig = concurrent.NoRetryConfig
	}

	c.logger.Debug(ctx, "send node request", log.MapFields{
		"call_type": "NodeRequestAttempt",
		"method":    method,
		"path":      path,
	})

	var res *response
	err := c.tracker.Instrument(method, func() error {
		v, err := concurrent.RetryWithConfig(ctx, concurrent.SupplierFunc(func() (interface{}, error) {
			return c.send(ctx, method, httpMethod, path, payload)
		}), retryConfig)
		if err != nil {
			return err
		}
		res = v.(*response)
		return nil
	})

	if err != nil {
		return nil, c.requestError(ctx, method, path, err)
	}

	c.observe(method, strconv.Itoa(res.status), "")
	return res, nil
}

func (c *NodeClient) send(ctx context.Context, method, httpMethod, path string, payload []byte) (interface{}, error) {
	if c.metrics != nil {
		timer := c.metrics.RequestTimer(method)
		defer timer.ObserveDuration()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.url+path, reader)
	if err != nil {
		return nil, concurrent.ErrCannotRecover{Cause: errors.New(errors.ErrHttpRequest, err)}
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpRes, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, concurrent.ErrCannotRecover{Cause: errors.New(errors.ErrCanceled, ctx.Err())}
		}
		return nil, errors.New(errors.ErrHttpRequest, err)
	}
	defer httpRes.Body.Close()

	body, err := rw.ReadAllWithLimit(httpRes.Body, maxBodySize)
	if err == rw.ErrLimitExceeded {
		return nil, concurrent.ErrCannotRecover{Cause: errors.New(errors.ErrDeserializeResponse, err)}
	}
	if err != nil {
		return nil, errors.New(errors.ErrHttpRequest, err)
	}

	res := &response{status: httpRes.StatusCode, header: httpRes.Header, body: body}
	if res.status >= 500 && httpMethod == http.MethodGet {
		return nil, serverError{res: res}
	}

	return res, nil
}

func (c *NodeClient) requestError(ctx context.Context, method, path string, err error) error {
	if maxErr, ok := err.(concurrent.ErrMaxAttemptsReached); ok {
		err = maxErr.Last()
	}

	var result errors.Error
	switch e := err.(type) {
	case serverError:
		result = errors.NewWithBody(errors.ErrNodeRequest, e, string(e.res.body))
	case errors.Error:
		result = e
	default:
		if ctx.Err() != nil {
			result = errors.New(errors.ErrCanceled, ctx.Err())
		} else {
			result = errors.New(errors.ErrHttpRequest, err)
		}
	}

	c.observe(method, "fail", errors.Kind(result))
	c.logger.Warn(ctx, "node request failed", log.MapFields{
		"call_type": "NodeRequestFailure",
		"method":    method,
		"path":      path,
	}, result)

	return result
}

func (c *NodeClient) observe(method, status, cause string) {
	if c.metrics != nil {
		c.metrics.RequestCounter(method, status, cause).Inc()
	}
}

func (c *NodeClient) decode(res *response, v interface{}) error {
	if err := json.Unmarshal(res.body, v); err != nil {
		return errors.NewWithBody(errors.ErrDeserializeResponse, err, string(res.body))
	}
	return nil
}

// unexpected maps a response with a status the caller does not handle
func unexpected(code errors.ErrorCode, res *response) error {
	return errors.NewWithBody(code, fmt.Errorf("node returned status %d", res.status), string(res.body))
}

// GetAccount implementation of Client for NodeClient
func (c *NodeClient) GetAccount(ctx context.Context, addr Address) (AccountInfo, error) {
	var info AccountInfo

	res, err := c.request(ctx, getAccount, http.MethodGet, "/accounts/"+addr.String(), nil)
	if err != nil {
		return info, err
	}

	if res.status == http.StatusNotFound {
		return info, unexpected(errors.ErrAccountNotFound, res)
	}
	if !res.ok() {
		return info, unexpected(errors.ErrNodeRequest, res)
	}

	err = c.decode(res, &info)
	return info, err
}

// EncodeSubmission implementation of Client for NodeClient
func (c *NodeClient) EncodeSubmission(ctx context.Context, req TransactionRequest) ([]byte, error) {
	res, err := c.request(ctx, encodeSubmission, http.MethodPost, "/transactions/encode_submission", req)
	if err != nil {
		return nil, err
	}

	if !res.ok() {
		return nil, unexpected(errors.ErrEncoding, res)
	}

	var encoded string
	if err := c.decode(res, &encoded); err != nil {
		return nil, err
	}

	msg, err := hexutil.Decode(encoded)
	if err != nil {
		return nil, errors.NewWithBody(errors.ErrInvalidSigningMessage, err, string(res.body))
	}

	return msg, nil
}

// SubmitTransaction implementation of Client for NodeClient
func (c *NodeClient) SubmitTransaction(ctx context.Context, signed SignedTransaction) (PendingTransaction, error) {
	var pending PendingTransaction

	res, err := c.request(ctx, submitTransaction, http.MethodPost, "/transactions", signed)
	if err != nil {
		return pending, err
	}

	if !res.ok() {
		return pending, unexpected(classifySubmission(res.status, res.body), res)
	}

	if err := c.decode(res, &pending); err != nil {
		return pending, err
	}
	if len(pending.Hash) == 0 {
		return pending, errors.NewWithBody(errors.ErrDeserializeResponse,
			fmt.Errorf("node accepted the transaction without a hash"), string(res.body))
	}

	return pending, nil
}

// GetTransaction implementation of Client for NodeClient
func (c *NodeClient) GetTransaction(ctx context.Context, hash string) (Transaction, error) {
	var transaction Transaction

	res, err := c.request(ctx, getTransaction, http.MethodGet, "/transactions/by_hash/"+url.PathEscape(hash), nil)
	if err != nil {
		return transaction, err
	}

	if res.status == http.StatusNotFound {
		return transaction, unexpected(errors.ErrTransactionNotFound, res)
	}
	if !res.ok() {
		return transaction, unexpected(errors.ErrNodeRequest, res)
	}

	if err := c.decode(res, &transaction); err != nil {
		return transaction, err
	}

	transaction.LedgerTimestampUsec = ledgerTimestamp(res.header)
	return transaction, nil
}

// CoinBalance implementation of Client for NodeClient. Accounts that
// never registered the coin hold none of it
func (c *NodeClient) CoinBalance(ctx context.Context, addr Address, coinType string) (uint64, error) {
	resource := fmt.Sprintf("0x1::coin::CoinStore<%s>", coinType)
	path := fmt.Sprintf("/accounts/%s/resource/%s", addr, url.PathEscape(resource))

	res, err := c.request(ctx, coinBalance, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}

	if res.status == http.StatusNotFound {
		return 0, nil
	}
	if !res.ok() {
		return 0, unexpected(errors.ErrNodeRequest, res)
	}

	var store coinStore
	if err := c.decode(res, &store); err != nil {
		return 0, err
	}

	return uint64(store.Data.Coin.Value), nil
}

// LedgerInfo implementation of Client for NodeClient
func (c *NodeClient) LedgerInfo(ctx context.Context) (LedgerInfo, error) {
	var info LedgerInfo

	res, err := c.request(ctx, ledgerInfo, http.MethodGet, "", nil)
	if err != nil {
		return info, err
	}

	if !res.ok() {
		return info, unexpected(errors.ErrNodeRequest, res)
	}

	err = c.decode(res, &info)
	return info, err
}

func ledgerTimestamp(header http.Header) uint64 {
	v := header.Get(LedgerTimestampHeader)
	if len(v) == 0 {
		return 0
	}

	ts, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}

	return ts
}
