package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	commons "github.com/krazyTry/commons-abc-go/commons_abc"
	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
	pn "github.com/krazyTry/commons-abc-go/precise_number"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers getAccountInfo and getProgramAccounts from a map of
// accounts. The first failures calls return a JSON-RPC error.
type fakeNode struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]map[string]any
	parsed   map[solana.PublicKey]map[string]any
	failures int
	calls    int
	filters  []json.RawMessage
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		accounts: make(map[solana.PublicKey]map[string]any),
		parsed:   make(map[solana.PublicKey]map[string]any),
	}
}

func (f *fakeNode) put(address, owner solana.PublicKey, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[address] = map[string]any{
		"lamports":   1_000_000,
		"owner":      owner.String(),
		"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": false,
		"rentEpoch":  0,
		"space":      len(data),
	}
}

func (f *fakeNode) putParsed(address, mint, owner solana.PublicKey, amount string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parsed[address] = map[string]any{
		"lamports": 2_039_280,
		"owner":    token.ProgramID.String(),
		"data": map[string]any{
			"program": "spl-token",
			"parsed": map[string]any{
				"type": "account",
				"info": map[string]any{
					"mint":        mint.String(),
					"owner":       owner.String(),
					"state":       "initialized",
					"isNative":    false,
					"tokenAmount": map[string]any{"amount": amount, "decimals": 6},
				},
			},
			"space": TokenAccountSize,
		},
		"executable": false,
		"rentEpoch":  0,
		"space":      TokenAccountSize,
	}
}

// reset clears the call counter and fails the next failures calls.
func (f *fakeNode) reset(failures int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls, f.failures = 0, failures
}

func (f *fakeNode) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeNode) lastFilters() []json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if f.failures > 0 {
		f.failures--
		resp["error"] = map[string]any{"code": -32005, "message": "node is behind"}
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	switch req.Method {
	case "getAccountInfo":
		var address solana.PublicKey
		_ = json.Unmarshal(req.Params[0], &address)
		var opts struct {
			Encoding string `json:"encoding"`
		}
		_ = json.Unmarshal(req.Params[1], &opts)

		var value any
		if v, ok := f.parsed[address]; ok && opts.Encoding == string(solana.EncodingJSONParsed) {
			value = v
		} else if v, ok := f.accounts[address]; ok {
			value = v
		}
		resp["result"] = map[string]any{"context": map[string]any{"slot": 1}, "value": value}
	case "getProgramAccounts":
		var opts struct {
			Filters []json.RawMessage `json:"filters"`
		}
		_ = json.Unmarshal(req.Params[1], &opts)
		f.filters = opts.Filters

		keyed := make([]map[string]any, 0, len(f.accounts))
		for address, account := range f.accounts {
			if account["space"] == commons.CurveConfigSize {
				keyed = append(keyed, map[string]any{"pubkey": address.String(), "account": account})
			}
		}
		resp["result"] = keyed
	default:
		resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

type chainFixture struct {
	node     *fakeNode
	state    *StateService
	curve    solana.PublicKey
	config   *commons.CurveConfig
	trader   commons.TraderAccounts
	vault    solana.PublicKey
	treasury solana.PublicKey
}

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// newChainFixture serves one curve with kappa 2 and K = 1e6, a vault
// holding 950_000 and a commons supply of 974_679.
func newChainFixture(t *testing.T) *chainFixture {
	t.Helper()
	node := newFakeNode()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	commonsMint, reserveMint := newKey(), newKey()
	curve, bump, err := helpers.DeriveCurveConfigPDA(commonsMint)
	require.NoError(t, err)

	config := &commons.CurveConfig{
		Kappa:            2,
		Exponent:         1,
		InitialPrice:     1,
		Friction:         50_000,
		CommonsTokenMint: commonsMint,
		ReserveMint:      reserveMint,
		ReserveVault:     newKey(),
		CommonsTreasury:  newKey(),
		CurveConfigBump:  bump,
		Authority:        newKey(),
		Invariant:        pn.New(1_000_000).ToBytes(),
	}
	data, err := commons.EncodeCurveConfig(config)
	require.NoError(t, err)
	node.put(curve, commons.CommonsAbcProgramID, data)

	authority := curve
	mint, err := binary.MarshalBin(token.Mint{MintAuthority: &authority, Supply: 974_679, Decimals: 6, IsInitialized: true})
	require.NoError(t, err)
	node.put(commonsMint, token.ProgramID, mint)

	node.putParsed(config.ReserveVault, reserveMint, curve, "950000")
	node.putParsed(config.CommonsTreasury, reserveMint, curve, "50000")

	trader := commons.TraderAccounts{Owner: newKey(), ReserveAccount: newKey(), CommonsAccount: newKey()}
	node.putParsed(trader.ReserveAccount, reserveMint, trader.Owner, "1000000")

	state := NewStateService(rpc.New(srv.URL),
		WithStateLogger(zaptest.NewLogger(t)),
		WithRetry(3, time.Millisecond, time.Second),
	)
	return &chainFixture{
		node:     node,
		state:    state,
		curve:    curve,
		config:   config,
		trader:   trader,
		vault:    config.ReserveVault,
		treasury: config.CommonsTreasury,
	}
}

func TestStateServiceLoadCurve(t *testing.T) {
	f := newChainFixture(t)
	ctx := context.Background()

	config, err := f.state.LoadCurve(ctx, f.curve)
	require.NoError(t, err)
	require.Equal(t, f.config, config)

	f.node.reset(0)
	_, err = f.state.LoadCurve(ctx, newKey())
	require.ErrorIs(t, err, abc.ErrCurveNotFound)
	require.Equal(t, 1, f.node.callCount())

	data, _ := commons.EncodeCurveConfig(f.config)
	foreign := newKey()
	f.node.put(foreign, newKey(), data)
	_, err = f.state.LoadCurve(ctx, foreign)
	require.ErrorIs(t, err, abc.ErrInvalidAccountData)

	require.ErrorIs(t, f.state.StoreCurve(ctx, f.curve, f.config), abc.ErrReadOnlyStore)
}

func TestStateServiceBalances(t *testing.T) {
	f := newChainFixture(t)
	ctx := context.Background()

	reserve, err := f.state.TokenAccountBalance(ctx, f.vault)
	require.NoError(t, err)
	require.Equal(t, uint64(950_000), reserve)

	supply, err := f.state.MintSupply(ctx, f.config.CommonsTokenMint)
	require.NoError(t, err)
	require.Equal(t, uint64(974_679), supply)

	// a node that cannot parse the account answers with raw bytes
	raw, err := binary.MarshalBin(token.Account{Mint: f.config.ReserveMint, Owner: f.curve, Amount: 42, State: token.Initialized})
	require.NoError(t, err)
	unparsed := newKey()
	f.node.put(unparsed, token.ProgramID, raw)
	amount, err := f.state.TokenAccountBalance(ctx, unparsed)
	require.NoError(t, err)
	require.Equal(t, uint64(42), amount)
}

func TestStateServiceRetries(t *testing.T) {
	f := newChainFixture(t)
	f.node.reset(2)

	reserve, err := f.state.TokenAccountBalance(context.Background(), f.vault)
	require.NoError(t, err)
	require.Equal(t, uint64(950_000), reserve)
	require.Equal(t, 3, f.node.callCount())

	f.node.reset(5)
	_, err = f.state.TokenAccountBalance(context.Background(), f.vault)
	require.Error(t, err)
}

func TestStateServiceListCurves(t *testing.T) {
	f := newChainFixture(t)

	curves, err := f.state.ListCurves(context.Background(), f.config.Authority)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	require.Equal(t, f.curve, curves[0].Address)
	require.Equal(t, f.config, curves[0].Config)

	filters := f.node.lastFilters()
	require.Len(t, filters, 3)
	var memcmp struct {
		Memcmp struct {
			Offset uint64 `json:"offset"`
			Bytes  string `json:"bytes"`
		} `json:"memcmp"`
	}
	require.NoError(t, json.Unmarshal(filters[2], &memcmp))
	require.Equal(t, uint64(commons.CurveConfigAuthorityOffset), memcmp.Memcmp.Offset)
	require.Equal(t, f.config.Authority.String(), memcmp.Memcmp.Bytes)
}
