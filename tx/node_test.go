package tx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pontem-network/flashloan-loadgen/concurrent"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

const testSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func testLogger() log.Logger {
	return log.NewLogrus(log.LogrusLoggerProperties{})
}

func testAccount(t *testing.T, addr string) wallet.Account {
	signer, err := wallet.ParseEd25519Signer(testSeed)
	if err != nil {
		t.Fatal(err)
	}
	return wallet.NewAccountWithAddress(ledger.MustParseAddress(addr), signer)
}

// fakeNode serves the subset of the node api used by the executor.
// It keeps one sequence number per account and executes a submitted
// transaction after pendingPolls polls of its hash
type fakeNode struct {
	mu sync.Mutex

	sequences    map[ledger.Address]uint64
	transactions map[string]*fakeTransaction
	pendingPolls int

	// rejectEncode and rejectSubmit, when set, are returned as 400
	// bodies by the encode and submit endpoints
	rejectEncode string
	rejectSubmit string

	// failExecution makes submitted transactions abort
	failExecution bool

	// neverExecute keeps transactions pending until release is called
	neverExecute bool

	// ledgerTime is reported in the ledger timestamp header when set
	ledgerTime time.Time

	encodes      int
	submits      []ledger.SignedTransaction
	polls        int
	usedSequence []uint64
}

type fakeTransaction struct {
	polls  int
	seq    uint64
	failed bool
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		sequences:    make(map[ledger.Address]uint64),
		transactions: make(map[string]*fakeTransaction),
		pendingPolls: 1,
	}
}

func (n *fakeNode) release() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.neverExecute = false
}

func (n *fakeNode) reply(w http.ResponseWriter, status int, v interface{}) {
	if !n.ledgerTime.IsZero() {
		w.Header().Set(ledger.LedgerTimestampHeader, fmt.Sprintf("%d", n.ledgerTime.UnixNano()/1000))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if s, ok := v.(string); ok && strings.HasPrefix(s, "{") {
		_, _ = w.Write([]byte(s))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v1")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/accounts/"):
		addr, err := ledger.ParseAddress(strings.TrimPrefix(path, "/accounts/"))
		if err != nil {
			n.reply(w, http.StatusBadRequest, `{"message":"invalid address"}`)
			return
		}
		seq, ok := n.sequences[addr]
		if !ok {
			n.reply(w, http.StatusNotFound, `{"message":"account not found","error_code":"account_not_found"}`)
			return
		}
		n.reply(w, http.StatusOK, ledger.AccountInfo{SequenceNumber: ledger.U64(seq)})

	case r.Method == http.MethodPost && path == "/transactions/encode_submission":
		n.encodes++
		if len(n.rejectEncode) > 0 {
			n.reply(w, http.StatusBadRequest, n.rejectEncode)
			return
		}
		var req ledger.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			n.reply(w, http.StatusBadRequest, `{"message":"failed to deserialize"}`)
			return
		}
		n.reply(w, http.StatusOK, hexutil.Encode([]byte(fmt.Sprintf("%s:%d", req.Sender, req.SequenceNumber))))

	case r.Method == http.MethodPost && path == "/transactions":
		var signed ledger.SignedTransaction
		if err := json.NewDecoder(r.Body).Decode(&signed); err != nil {
			n.reply(w, http.StatusBadRequest, `{"message":"failed to deserialize"}`)
			return
		}
		n.submits = append(n.submits, signed)
		if len(n.rejectSubmit) > 0 {
			n.reply(w, http.StatusBadRequest, n.rejectSubmit)
			return
		}

		seq := uint64(signed.SequenceNumber)
		if seq < n.sequences[signed.Sender] {
			n.reply(w, http.StatusBadRequest, `{"message":"sequence number too old","vm_error_code":3}`)
			return
		}

		hash := fmt.Sprintf("0x%064x", len(n.submits))
		n.transactions[hash] = &fakeTransaction{seq: seq, failed: n.failExecution}
		n.usedSequence = append(n.usedSequence, seq)
		// the sequence number is consumed once the transaction executes,
		// which the fake does right away
		n.sequences[signed.Sender] = seq + 1
		n.reply(w, http.StatusAccepted, ledger.PendingTransaction{Hash: hash})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/transactions/by_hash/"):
		n.polls++
		hash := strings.TrimPrefix(path, "/transactions/by_hash/")
		transaction, ok := n.transactions[hash]
		if !ok {
			n.reply(w, http.StatusNotFound, `{"message":"transaction not found","error_code":"transaction_not_found"}`)
			return
		}

		transaction.polls++
		if n.neverExecute || transaction.polls <= n.pendingPolls {
			n.reply(w, http.StatusOK, ledger.Transaction{Type: ledger.PendingTransactionType, Hash: hash})
			return
		}

		n.reply(w, http.StatusOK, ledger.Transaction{
			Type:           ledger.UserTransactionType,
			Hash:           hash,
			SequenceNumber: ledger.U64(transaction.seq),
			Success:        !transaction.failed,
			VMStatus:       vmStatus(transaction.failed),
		})

	default:
		n.reply(w, http.StatusNotFound, `{"message":"not found"}`)
	}
}

func newNodeClient(t *testing.T, node *fakeNode) *ledger.NodeClient {
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	return ledger.NewClient(&ledger.Services{Logger: testLogger()}, &ledger.Props{
		URL:         server.URL + "/v1",
		Timeout:     time.Second,
		RetryConfig: concurrent.NoRetryConfig,
	})
}

func vmStatus(failed bool) string {
	if failed {
		return "Move abort in 0x1::coin: EINSUFFICIENT_BALANCE(0x10006)"
	}
	return "Executed successfully"
}

func (n *fakeNode) submitted() []ledger.SignedTransaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ledger.SignedTransaction(nil), n.submits...)
}

func (n *fakeNode) pollCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.polls
}

func (n *fakeNode) encodeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.encodes
}

func (n *fakeNode) used() []uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint64(nil), n.usedSequence...)
}
