package commons_abc

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/commons-abc-go/commons_abc/helpers"
	"github.com/krazyTry/commons-abc-go/commons_abc/math"
	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// Engine settles buys and sells against curves held in a CurveStore. It
// prices every operation from the store and Balances, then delegates all
// value movement to a TokenService. Operations on one curve must be
// serialized by the caller.
type Engine struct {
	store    CurveStore
	balances Balances
	tokens   TokenService
	logger   *zap.Logger
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(store CurveStore, balances Balances, tokens TokenService, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		balances: balances,
		tokens:   tokens,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("commons_abc")
	return e
}

// InitializeCurve computes the invariant from an initial supply/reserve
// pair and persists a new curve config under the PDA of the commons mint.
// An existing curve may only be re-initialized by its authority.
func (e *Engine) InitializeCurve(ctx context.Context, authority solanago.PublicKey, accounts CurveAccounts, params InitializeCurveParams) (*Curve, error) {
	log := e.logger.With(
		zap.String("operation", "initialize_curve"),
		zap.Stringer("commons_mint", accounts.CommonsTokenMint),
	)

	if err := validateKappa(params.Kappa); err != nil {
		log.Warn("initialize rejected", zap.Error(err))
		return nil, err
	}
	if err := validateFriction(params.Friction); err != nil {
		log.Warn("initialize rejected", zap.Error(err))
		return nil, err
	}

	address, bump, err := helpers.DeriveCurveConfigPDA(accounts.CommonsTokenMint)
	if err != nil {
		return nil, fmt.Errorf("derive curve config: %w", err)
	}

	existing, err := e.store.LoadCurve(ctx, address)
	switch {
	case err == nil:
		if !existing.Authority.Equals(authority) {
			log.Warn("re-initialize rejected", zap.Stringer("caller", authority))
			return nil, abc.ErrUnauthorized
		}
	case errors.Is(err, abc.ErrCurveNotFound):
	default:
		return nil, fmt.Errorf("load curve %s: %w", address, err)
	}

	invariant, err := math.ComputeInvariant(params.InitialSupply, params.InitialReserve, params.Kappa)
	if err != nil {
		log.Warn("initialize rejected", zap.Error(err))
		return nil, err
	}

	config := &CurveConfig{
		Kappa:            params.Kappa,
		Exponent:         params.Exponent,
		InitialPrice:     params.InitialPrice,
		Friction:         params.Friction,
		CommonsTokenMint: accounts.CommonsTokenMint,
		ReserveMint:      accounts.ReserveMint,
		ReserveVault:     accounts.ReserveVault,
		CommonsTreasury:  accounts.CommonsTreasury,
		CurveConfigBump:  bump,
		Authority:        authority,
		Invariant:        invariant.ToBytes(),
	}
	if err := e.store.StoreCurve(ctx, address, config); err != nil {
		return nil, fmt.Errorf("store curve %s: %w", address, err)
	}

	log.Info("curve initialized",
		zap.Stringer("curve", address),
		zap.Uint64("kappa", config.Kappa),
		zap.Uint64("friction", config.Friction),
		zap.Stringer("invariant", invariant),
	)
	return &Curve{Address: address, Config: config}, nil
}

// Buy deposits amount reserve units from the trader and mints the tokens
// the curve issues for the reserve share of the deposit.
func (e *Engine) Buy(ctx context.Context, curve solanago.PublicKey, trader TraderAccounts, amount uint64) (*math.BuyQuote, error) {
	log := e.tradeLogger(abc.TradeDirectionBuy, curve, trader, amount)

	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	quote, err := e.quoteBuy(ctx, config, amount)
	if err != nil {
		e.reject(log, err)
		return nil, err
	}
	authority, err := curveAuthority(curve, config)
	if err != nil {
		return nil, err
	}

	err = e.atomic(ctx, func(ctx context.Context) error {
		if err := e.tokens.Transfer(ctx, trader.ReserveAccount, config.ReserveVault, abc.WalletSigner(trader.Owner), amount); err != nil {
			return err
		}
		if quote.PoolShare > 0 {
			if err := e.tokens.Transfer(ctx, config.ReserveVault, config.CommonsTreasury, authority, quote.PoolShare); err != nil {
				return err
			}
		}
		return e.tokens.MintTo(ctx, config.CommonsTokenMint, trader.CommonsAccount, authority, quote.Minted)
	})
	if err != nil {
		log.Error("buy failed", zap.Error(err))
		return nil, err
	}

	log.Info("buy settled",
		zap.Uint64("reserve_share", quote.ReserveShare),
		zap.Uint64("pool_share", quote.PoolShare),
		zap.Uint64("reserve_after", quote.ReserveAfter),
		zap.Uint64("minted", quote.Minted),
	)
	return quote, nil
}

// Sell burns amount tokens from the trader and pays out the reserve they
// release, less the exit tribute sent to the treasury.
func (e *Engine) Sell(ctx context.Context, curve solanago.PublicKey, trader TraderAccounts, amount uint64) (*math.SellQuote, error) {
	log := e.tradeLogger(abc.TradeDirectionSell, curve, trader, amount)

	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	quote, err := e.quoteSell(ctx, config, amount)
	if err != nil {
		e.reject(log, err)
		return nil, err
	}
	authority, err := curveAuthority(curve, config)
	if err != nil {
		return nil, err
	}

	err = e.atomic(ctx, func(ctx context.Context) error {
		if err := e.tokens.Burn(ctx, config.CommonsTokenMint, trader.CommonsAccount, abc.WalletSigner(trader.Owner), amount); err != nil {
			return err
		}
		if err := e.tokens.Transfer(ctx, config.ReserveVault, trader.ReserveAccount, authority, quote.NetPayout); err != nil {
			return err
		}
		if quote.ExitTribute > 0 {
			return e.tokens.Transfer(ctx, config.ReserveVault, config.CommonsTreasury, authority, quote.ExitTribute)
		}
		return nil
	})
	if err != nil {
		log.Error("sell failed", zap.Error(err))
		return nil, err
	}

	log.Info("sell settled",
		zap.Uint64("supply_after", quote.SupplyAfter),
		zap.Uint64("reserve_delta", quote.ReserveDelta),
		zap.Uint64("exit_tribute", quote.ExitTribute),
		zap.Uint64("net_payout", quote.NetPayout),
	)
	return quote, nil
}

// AdminUpdate applies the set fields of params. The invariant is never
// touched. Only the curve authority may call it.
func (e *Engine) AdminUpdate(ctx context.Context, curve, caller solanago.PublicKey, params AdminUpdateParams) (*CurveConfig, error) {
	log := e.logger.With(
		zap.String("operation", "admin_update"),
		zap.Stringer("curve", curve),
		zap.Stringer("caller", caller),
	)

	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	if !config.Authority.Equals(caller) {
		log.Warn("admin update rejected", zap.Error(abc.ErrUnauthorized))
		return nil, abc.ErrUnauthorized
	}
	if params.Kappa != nil {
		if err := validateKappa(*params.Kappa); err != nil {
			log.Warn("admin update rejected", zap.Error(err))
			return nil, err
		}
	}
	if params.Friction != nil {
		if err := validateFriction(*params.Friction); err != nil {
			log.Warn("admin update rejected", zap.Error(err))
			return nil, err
		}
	}

	if params.Kappa != nil {
		config.Kappa = *params.Kappa
	}
	if params.Exponent != nil {
		config.Exponent = *params.Exponent
	}
	if params.InitialPrice != nil {
		config.InitialPrice = *params.InitialPrice
	}
	if params.Friction != nil {
		config.Friction = *params.Friction
	}

	if err := e.store.StoreCurve(ctx, curve, config); err != nil {
		return nil, fmt.Errorf("store curve %s: %w", curve, err)
	}
	log.Info("curve parameters updated",
		zap.Uint64("kappa", config.Kappa),
		zap.Uint64("exponent", config.Exponent),
		zap.Uint64("initial_price", config.InitialPrice),
		zap.Uint64("friction", config.Friction),
	)
	return config, nil
}

// QuoteBuy prices a buy against current state without settling it.
func (e *Engine) QuoteBuy(ctx context.Context, curve solanago.PublicKey, amount uint64) (*math.BuyQuote, error) {
	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	return e.quoteBuy(ctx, config, amount)
}

// QuoteSell prices a sell against current state without settling it.
func (e *Engine) QuoteSell(ctx context.Context, curve solanago.PublicKey, amount uint64) (*math.SellQuote, error) {
	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	return e.quoteSell(ctx, config, amount)
}

func (e *Engine) State(ctx context.Context, curve solanago.PublicKey) (*CurveState, error) {
	config, err := e.load(ctx, curve)
	if err != nil {
		return nil, err
	}
	reserve, err := e.balances.TokenAccountBalance(ctx, config.ReserveVault)
	if err != nil {
		return nil, fmt.Errorf("reserve vault balance: %w", err)
	}
	supply, err := e.balances.MintSupply(ctx, config.CommonsTokenMint)
	if err != nil {
		return nil, fmt.Errorf("commons mint supply: %w", err)
	}
	treasury, err := e.balances.TokenAccountBalance(ctx, config.CommonsTreasury)
	if err != nil {
		return nil, fmt.Errorf("treasury balance: %w", err)
	}
	price, err := SpotPrice(config, supply)
	if err != nil {
		return nil, err
	}
	return &CurveState{
		Address:   curve,
		Config:    config,
		Reserve:   reserve,
		Supply:    supply,
		Treasury:  treasury,
		Invariant: config.InvariantNumber(),
		SpotPrice: price,
	}, nil
}

func (e *Engine) load(ctx context.Context, curve solanago.PublicKey) (*CurveConfig, error) {
	config, err := e.store.LoadCurve(ctx, curve)
	if err != nil {
		return nil, fmt.Errorf("load curve %s: %w", curve, err)
	}
	return config, nil
}

func (e *Engine) quoteBuy(ctx context.Context, config *CurveConfig, amount uint64) (*math.BuyQuote, error) {
	reserve, err := e.balances.TokenAccountBalance(ctx, config.ReserveVault)
	if err != nil {
		return nil, fmt.Errorf("reserve vault balance: %w", err)
	}
	return math.QuoteBuy(amount, reserve, config.InvariantNumber(), config.Kappa, config.Friction)
}

func (e *Engine) quoteSell(ctx context.Context, config *CurveConfig, amount uint64) (*math.SellQuote, error) {
	supply, err := e.balances.MintSupply(ctx, config.CommonsTokenMint)
	if err != nil {
		return nil, fmt.Errorf("commons mint supply: %w", err)
	}
	return math.QuoteSell(amount, supply, config.InvariantNumber(), config.Kappa, config.Friction)
}

func (e *Engine) atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := e.tokens.(Transactor); ok {
		return tx.Atomic(ctx, fn)
	}
	return fn(ctx)
}

func (e *Engine) tradeLogger(direction abc.TradeDirection, curve solanago.PublicKey, trader TraderAccounts, amount uint64) *zap.Logger {
	return e.logger.With(
		zap.Stringer("operation", direction),
		zap.Stringer("curve", curve),
		zap.Stringer("trader", trader.Owner),
		zap.Uint64("amount", amount),
	)
}

func (e *Engine) reject(log *zap.Logger, err error) {
	if math.IsRejection(err) {
		log.Warn("trade rejected", zap.Error(err))
		return
	}
	log.Error("trade failed", zap.Error(err))
}

// curveAuthority rebuilds the signer of a curve and checks that it is the
// curve's own address.
func curveAuthority(curve solanago.PublicKey, config *CurveConfig) (abc.Signer, error) {
	authority, err := helpers.CurveAuthority(config.CommonsTokenMint, config.CurveConfigBump)
	if err != nil {
		return abc.Signer{}, fmt.Errorf("curve authority: %w", err)
	}
	if !authority.Key.Equals(curve) {
		return abc.Signer{}, fmt.Errorf("curve authority %s does not match curve %s: %w", authority.Key, curve, abc.ErrInvalidSigner)
	}
	return authority, nil
}

func validateKappa(kappa uint64) error {
	if kappa < abc.MinKappa {
		return abc.ErrInvalidKappa
	}
	return nil
}

func validateFriction(friction uint64) error {
	if friction > abc.MaxFriction {
		return abc.ErrInvalidFriction
	}
	return nil
}
