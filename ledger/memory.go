package ledger

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/bits"
	"sync"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

var (
	ErrAccountNotFound = errors.New("token account not found")
	ErrMintNotFound    = errors.New("mint not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrMintMismatch    = errors.New("account mint mismatch")
)

type Mint struct {
	Authority solanago.PublicKey
	Supply    uint64
	Decimals  uint8
}

type Account struct {
	Mint   solanago.PublicKey
	Owner  solanago.PublicKey
	Amount uint64
}

// Memory is an in-process SPL-token-like ledger. It checks ownership and
// program derived signers the way the token program would, and can apply a
// group of calls all-or-nothing through Atomic.
type Memory struct {
	programID solanago.PublicKey

	txMu     sync.Mutex
	mu       sync.Mutex
	mints    map[solanago.PublicKey]Mint
	accounts map[solanago.PublicKey]Account
}

// NewMemory returns an empty ledger accepting derived signers of programID.
func NewMemory(programID solanago.PublicKey) *Memory {
	return &Memory{
		programID: programID,
		mints:     make(map[solanago.PublicKey]Mint),
		accounts:  make(map[solanago.PublicKey]Account),
	}
}

func (m *Memory) CreateMint(mint, authority solanago.PublicKey, decimals uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mints[mint]; ok {
		return fmt.Errorf("mint %s: %w", mint, ErrAccountExists)
	}
	m.mints[mint] = Mint{Authority: authority, Decimals: decimals}
	return nil
}

func (m *Memory) CreateAccount(account, mint, owner solanago.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mints[mint]; !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrMintNotFound)
	}
	if _, ok := m.accounts[account]; ok {
		return fmt.Errorf("account %s: %w", account, ErrAccountExists)
	}
	m.accounts[account] = Account{Mint: mint, Owner: owner}
	return nil
}

func (m *Memory) Account(account solanago.PublicKey) (Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[account]
	return a, ok
}

func (m *Memory) Mint(mint solanago.PublicKey) (Mint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.mints[mint]
	return v, ok
}

func (m *Memory) TokenAccountBalance(_ context.Context, account solanago.PublicKey) (uint64, error) {
	a, ok := m.Account(account)
	if !ok {
		return 0, fmt.Errorf("account %s: %w", account, ErrAccountNotFound)
	}
	return a.Amount, nil
}

func (m *Memory) MintSupply(_ context.Context, mint solanago.PublicKey) (uint64, error) {
	v, ok := m.Mint(mint)
	if !ok {
		return 0, fmt.Errorf("mint %s: %w", mint, ErrMintNotFound)
	}
	return v.Supply, nil
}

func (m *Memory) Transfer(_ context.Context, from, to solanago.PublicKey, authority abc.Signer, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.accounts[from]
	if !ok {
		return fmt.Errorf("source %s: %w", from, ErrAccountNotFound)
	}
	dst, ok := m.accounts[to]
	if !ok {
		return fmt.Errorf("destination %s: %w", to, ErrAccountNotFound)
	}
	if !src.Mint.Equals(dst.Mint) {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, ErrMintMismatch)
	}
	if err := m.authorize(authority, src.Owner); err != nil {
		return err
	}
	if src.Amount < amount {
		return fmt.Errorf("source %s holds %d, needs %d: %w", from, src.Amount, amount, abc.ErrInsufficientFunds)
	}
	if from == to {
		return nil
	}
	received, carry := bits.Add64(dst.Amount, amount, 0)
	if carry != 0 {
		return abc.ErrMathOverflow
	}

	src.Amount -= amount
	dst.Amount = received
	m.accounts[from] = src
	m.accounts[to] = dst
	return nil
}

func (m *Memory) MintTo(_ context.Context, mint, to solanago.PublicKey, authority abc.Signer, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.mints[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrMintNotFound)
	}
	dst, ok := m.accounts[to]
	if !ok {
		return fmt.Errorf("destination %s: %w", to, ErrAccountNotFound)
	}
	if !dst.Mint.Equals(mint) {
		return fmt.Errorf("mint to %s: %w", to, ErrMintMismatch)
	}
	if err := m.authorize(authority, v.Authority); err != nil {
		return err
	}
	supply, carry := bits.Add64(v.Supply, amount, 0)
	if carry != 0 {
		return abc.ErrMathOverflow
	}

	v.Supply = supply
	dst.Amount += amount
	m.mints[mint] = v
	m.accounts[to] = dst
	return nil
}

func (m *Memory) Burn(_ context.Context, mint, from solanago.PublicKey, authority abc.Signer, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.mints[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrMintNotFound)
	}
	src, ok := m.accounts[from]
	if !ok {
		return fmt.Errorf("source %s: %w", from, ErrAccountNotFound)
	}
	if !src.Mint.Equals(mint) {
		return fmt.Errorf("burn from %s: %w", from, ErrMintMismatch)
	}
	if err := m.authorize(authority, src.Owner); err != nil {
		return err
	}
	if src.Amount < amount {
		return fmt.Errorf("source %s holds %d, needs %d: %w", from, src.Amount, amount, abc.ErrInsufficientFunds)
	}

	src.Amount -= amount
	v.Supply -= amount
	m.accounts[from] = src
	m.mints[mint] = v
	return nil
}

// Atomic runs fn and restores every balance and supply if it fails.
// Atomic calls are serialized with each other.
func (m *Memory) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	mints, accounts := maps.Clone(m.mints), maps.Clone(m.accounts)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.mints, m.accounts = mints, accounts
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) authorize(authority abc.Signer, owner solanago.PublicKey) error {
	if !authority.Key.Equals(owner) {
		return fmt.Errorf("%s is not %s: %w", authority.Key, owner, abc.ErrInvalidSigner)
	}
	// an off-curve owner has no private key and signs only through its seeds
	if !owner.IsOnCurve() && !authority.IsProgramDerived() {
		return fmt.Errorf("%s: missing derivation seeds: %w", owner, abc.ErrInvalidSigner)
	}
	if err := helpers.VerifySigner(authority, m.programID); err != nil {
		return fmt.Errorf("%s: %v: %w", authority.Key, err, abc.ErrInvalidSigner)
	}
	return nil
}
