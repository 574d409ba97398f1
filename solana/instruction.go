package solana

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	abc "github.com/krazyTry/commons-abc-go/commons_abc/shared"
)

// SignedInstruction is an SPL token instruction together with the authority
// that must sign it. Program derived authorities carry the seeds needed to
// sign through invoke_signed.
type SignedInstruction struct {
	Instruction solana.Instruction
	Signer      abc.Signer
}

// InstructionRecorder is a TokenService that turns every movement into an
// SPL token instruction instead of applying it. Movements of a failed
// Atomic group are dropped.
type InstructionRecorder struct {
	mu           sync.Mutex
	instructions []SignedInstruction
}

func NewInstructionRecorder() *InstructionRecorder {
	return &InstructionRecorder{}
}

func (r *InstructionRecorder) Transfer(_ context.Context, from, to solana.PublicKey, authority abc.Signer, amount uint64) error {
	ix := token.NewTransferInstruction(amount, from, to, authority.Key, []solana.PublicKey{}).Build()
	r.append(ix, authority)
	return nil
}

func (r *InstructionRecorder) MintTo(_ context.Context, mint, to solana.PublicKey, authority abc.Signer, amount uint64) error {
	ix := token.NewMintToInstruction(amount, mint, to, authority.Key, []solana.PublicKey{}).Build()
	r.append(ix, authority)
	return nil
}

func (r *InstructionRecorder) Burn(_ context.Context, mint, from solana.PublicKey, authority abc.Signer, amount uint64) error {
	ix := token.NewBurnInstruction(amount, from, mint, authority.Key, []solana.PublicKey{}).Build()
	r.append(ix, authority)
	return nil
}

func (r *InstructionRecorder) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	mark := len(r.instructions)
	r.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.mu.Lock()
		r.instructions = r.instructions[:mark]
		r.mu.Unlock()
		return err
	}
	return nil
}

// Instructions returns the recorded instructions in settlement order.
func (r *InstructionRecorder) Instructions() []solana.Instruction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]solana.Instruction, len(r.instructions))
	for i, v := range r.instructions {
		out[i] = v.Instruction
	}
	return out
}

func (r *InstructionRecorder) Signed() []SignedInstruction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SignedInstruction(nil), r.instructions...)
}

func (r *InstructionRecorder) Reset() {
	r.mu.Lock()
	r.instructions = nil
	r.mu.Unlock()
}

func (r *InstructionRecorder) append(ix solana.Instruction, authority abc.Signer) {
	r.mu.Lock()
	r.instructions = append(r.instructions, SignedInstruction{Instruction: ix, Signer: authority})
	r.mu.Unlock()
}
