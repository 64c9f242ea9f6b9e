package blockchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-relay/internal/domain"
)

const contractWithCode = "0x2222222222222222222222222222222222222222"

// newFakeNode serves the handful of JSON-RPC methods the checker uses
func newFakeNode(t *testing.T, chainIDHex string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params []any           `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result any
		switch req.Method {
		case "eth_chainId":
			result = chainIDHex
		case "eth_getCode":
			addr, _ := req.Params[0].(string)
			if strings.EqualFold(addr, contractWithCode) {
				result = "0x6080604052"
			} else {
				result = "0x"
			}
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_ConnectMatchingChain(t *testing.T) {
	node := newFakeNode(t, "0x561bf78b") // 1444673419
	c := NewCheckerAdapter()
	defer c.Close()

	require.NoError(t, c.Connect(context.Background(), node.URL, 1444673419))
	assert.Equal(t, uint64(1444673419), c.ChainID())
}

func TestChecker_ConnectChainMismatch(t *testing.T) {
	node := newFakeNode(t, "0x1")
	c := NewCheckerAdapter()
	defer c.Close()

	err := c.Connect(context.Background(), node.URL, 1444673419)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChainMismatch)
}

func TestChecker_ConnectAcceptsAnyChainWhenZero(t *testing.T) {
	node := newFakeNode(t, "0x89")
	c := NewCheckerAdapter()
	defer c.Close()

	require.NoError(t, c.Connect(context.Background(), node.URL, 0))
	assert.Equal(t, uint64(137), c.ChainID())
}

func TestChecker_CodeExists(t *testing.T) {
	node := newFakeNode(t, "0x1")
	c := NewCheckerAdapter()
	defer c.Close()
	require.NoError(t, c.Connect(context.Background(), node.URL, 1))

	exists, err := c.CodeExists(context.Background(), contractWithCode)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.CodeExists(context.Background(), "0x3333333333333333333333333333333333333333")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChecker_CodeExistsRejectsBadAddress(t *testing.T) {
	node := newFakeNode(t, "0x1")
	c := NewCheckerAdapter()
	defer c.Close()
	require.NoError(t, c.Connect(context.Background(), node.URL, 1))

	_, err := c.CodeExists(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestChecker_CodeExistsRequiresConnection(t *testing.T) {
	c := NewCheckerAdapter()

	_, err := c.CodeExists(context.Background(), contractWithCode)
	assert.Error(t, err)
}
