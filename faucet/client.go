package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/rw"
	"github.com/pontem-network/flashloan-loadgen/tx"
)

const maxBodySize = 1 << 16

// HttpClient is the basic interface for the
// underlying http client used by the faucet Client
type HttpClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Waiter waits for a transaction to reach a terminal state
type Waiter interface {
	Wait(ctx context.Context, hash string, expiration time.Time,
		interval time.Duration, timeout time.Duration) (tx.Outcome, error)
}

type Services struct {
	Logger log.Logger
}

type Props struct {
	URL     string
	Timeout time.Duration
}

type Deps struct {
	Logger log.Logger
	Client HttpClient
}

// Client asks a faucet to mint coins to an account. It is only used
// to set up the accounts of a load generation run
type Client struct {
	url    string
	client HttpClient
	logger log.Logger
}

// NewClient creates a new faucet client
func NewClient(services *Services, props *Props) *Client {
	return NewClientWithDeps(&Deps{
		Logger: services.Logger,
		Client: &http.Client{Timeout: props.Timeout},
	}, props)
}

// NewClientWithDeps creates a new faucet client using the provided
// dependencies
func NewClientWithDeps(deps *Deps, props *Props) *Client {
	return &Client{
		url:    strings.TrimSuffix(props.URL, "/"),
		client: deps.Client,
		logger: deps.Logger.ForClass("faucet", "Client"),
	}
}

// Fund mints amount coins to addr and returns the hashes of the
// transactions the faucet submitted. Creating the account is part of
// the funding if it does not exist yet
func (c *Client) Fund(ctx context.Context, addr ledger.Address, amount uint64) ([]string, error) {
	query := url.Values{}
	query.Set("amount", strconv.FormatUint(amount, 10))
	query.Set("address", addr.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/mint?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.New(errors.ErrHttpRequest, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.New(errors.ErrCanceled, ctx.Err())
		}
		err := errors.New(errors.ErrHttpRequest, err)
		c.logger.Warn(ctx, "faucet request failed", log.MapFields{"call_type": "FundFailure"}, err)
		return nil, err
	}
	defer res.Body.Close()

	body, err := rw.ReadAllWithLimit(res.Body, maxBodySize)
	if err != nil {
		return nil, errors.New(errors.ErrHttpRequest, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		err := errors.NewWithBody(errors.ErrFaucet,
			fmt.Errorf("faucet returned status %d", res.StatusCode), string(body))
		c.logger.Warn(ctx, "faucet rejected funding", log.MapFields{
			"call_type": "FundFailure",
			"address":   addr.String(),
		}, err)
		return nil, err
	}

	var hashes []string
	if err := json.Unmarshal(body, &hashes); err != nil {
		return nil, errors.NewWithBody(errors.ErrDeserializeResponse, err, string(body))
	}

	c.logger.Debug(ctx, "", log.MapFields{
		"call_type": "FundSuccess",
		"address":   addr.String(),
		"amount":    amount,
		"hashes":    len(hashes),
	})

	return hashes, nil
}

// FundAndWait funds addr and waits for all the funding transactions to
// be executed. A funding transaction that aborts fails with ErrFaucet
func (c *Client) FundAndWait(
	ctx context.Context,
	waiter Waiter,
	addr ledger.Address,
	amount uint64,
	config tx.ExecuteConfig,
) ([]string, error) {
	hashes, err := c.Fund(ctx, addr, amount)
	if err != nil {
		return nil, err
	}

	config = config.Merge(tx.DefaultExecuteConfig)
	expiration := time.Now().Add(config.ExpirationWindow)

	for _, hash := range hashes {
		outcome, err := waiter.Wait(ctx, hash, expiration, config.PollInterval, config.PollTimeout)
		if err != nil {
			return hashes, err
		}
		if outcome.Status != tx.Executed {
			return hashes, errors.NewWithBody(errors.ErrFaucet,
				fmt.Errorf("funding transaction %s %s", hash, outcome.Status), outcome.Reason)
		}
	}

	return hashes, nil
}
