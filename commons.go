package commons

import (
	commonsAbc "github.com/krazyTry/commons-abc-go/commons_abc"
	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
	"github.com/krazyTry/commons-abc-go/commons_abc/math"
	"github.com/krazyTry/commons-abc-go/ledger"
	"github.com/krazyTry/commons-abc-go/solana"
)

// NewEngine creates a settlement engine over a curve store, a balance
// source and a token service.
//
// Example:
//
// engine := NewEngine(NewMemoryStore(), memoryLedger, memoryLedger, commons_abc.WithLogger(log))
//
// engine.InitializeCurve(ctx, authority, accounts, params)
//
// engine.Buy(ctx, curve, trader, 1_000_000)
var NewEngine = commonsAbc.NewEngine

// NewMemoryStore creates an in-memory curve store.
var NewMemoryStore = commonsAbc.NewMemoryStore

// NewMemoryLedger creates an in-memory token ledger that accepts signers
// derived from the given program id.
var NewMemoryLedger = ledger.NewMemory

// NewStateService creates a read-only curve store and balance source over
// a Solana RPC client.
//
// Example:
//
// state := NewStateService(rpc.New(rpc.DevNet_RPC))
//
// engine := NewEngine(state, state, NewInstructionRecorder())
//
// engine.QuoteBuy(ctx, curve, 1_000_000)
var NewStateService = solana.NewStateService

// NewInstructionRecorder creates a token service that records SPL token
// instructions instead of moving balances.
var NewInstructionRecorder = solana.NewInstructionRecorder

// DeriveCurveConfig returns the curve address of a commons mint.
var DeriveCurveConfig = helpers.DeriveCurveConfig

var (
	ComputeInvariant = math.ComputeInvariant
	QuoteBuy         = math.QuoteBuy
	QuoteSell        = math.QuoteSell
)
