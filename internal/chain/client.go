package chain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
)

// trackerABI is the external surface of the ActivityActionTracker
// contract. Activities and actions are keyed by ids derived off-chain.
const trackerABI = `[
	{"type":"function","name":"createActivity","inputs":[{"name":"activityId","type":"uint64"},{"name":"title","type":"string"},{"name":"points","type":"uint64"}],"outputs":[]},
	{"type":"function","name":"submitAction","inputs":[{"name":"actionId","type":"uint64"},{"name":"activityId","type":"uint64"},{"name":"proofFingerprint","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"validateAction","inputs":[{"name":"actionId","type":"uint64"},{"name":"isValid","type":"bool"}],"outputs":[]},
	{"type":"function","name":"getActivity","stateMutability":"view","inputs":[{"name":"activityId","type":"uint64"}],"outputs":[{"name":"title","type":"string"},{"name":"points","type":"uint64"},{"name":"active","type":"bool"}]},
	{"type":"function","name":"getAction","stateMutability":"view","inputs":[{"name":"actionId","type":"uint64"}],"outputs":[{"name":"activityId","type":"uint64"},{"name":"validated","type":"bool"}]}
]`

// Mirror pushes local writes to the tracker contract. All methods are
// best-effort from the caller's point of view; the usecases log failures
// and keep going.
type Mirror struct {
	contract *bind.BoundContract
	opts     *bind.TransactOpts

	// mirrored remembers activity ids already created on chain so
	// submissions can lazily create missing ones.
	mirrored *cache.Cache
}

type Config struct {
	RPCEndpoint     string
	ChainID         int64
	PrivateKey      string
	ContractAddress string
}

func NewMirror(cfg Config) (*Mirror, error) {
	client, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "chain: dial failed")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "chain: bad private key")
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		return nil, errors.Wrap(err, "chain: transactor setup failed")
	}

	parsed, err := abi.JSON(strings.NewReader(trackerABI))
	if err != nil {
		return nil, errors.Wrap(err, "chain: abi parse failed")
	}

	address := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(address, parsed, client, client, client)

	return &Mirror{
		contract: contract,
		opts:     opts,
		mirrored: cache.New(24*time.Hour, time.Hour),
	}, nil
}

func (m *Mirror) CreateActivity(ctx context.Context, activity *domain.Activity) (uint64, error) {
	id := ContractID(activity.ID().String())
	opts := m.transactOpts(ctx)

	_, err := m.contract.Transact(opts, "createActivity", id, activity.Title(), uint64(activity.Points()))
	if err != nil {
		return 0, errors.Wrap(err, "chain: createActivity failed")
	}
	m.mirrored.Set(activity.ID().String(), true, cache.DefaultExpiration)
	return id, nil
}

func (m *Mirror) SubmitAction(ctx context.Context, action *domain.Action) (uint64, error) {
	id := ContractID(action.ID().String())
	activityID := ContractID(action.ActivityID().String())
	opts := m.transactOpts(ctx)

	var fingerprint [32]byte
	copy(fingerprint[:], crypto.Keccak256([]byte(action.Proof())))

	_, err := m.contract.Transact(opts, "submitAction", id, activityID, fingerprint)
	if err != nil {
		return 0, errors.Wrap(err, "chain: submitAction failed")
	}
	return id, nil
}

func (m *Mirror) ValidateProof(ctx context.Context, id domain.ActionID, isValid bool) error {
	opts := m.transactOpts(ctx)

	_, err := m.contract.Transact(opts, "validateAction", ContractID(id.String()), isValid)
	if err != nil {
		return errors.Wrap(err, "chain: validateAction failed")
	}
	return nil
}

// HasMirrored reports whether an activity was created on chain during this
// process's lifetime.
func (m *Mirror) HasMirrored(activityID domain.ActivityID) bool {
	_, ok := m.mirrored.Get(activityID.String())
	return ok
}

// ActivityState is the contract-side view of an activity.
type ActivityState struct {
	Title  string
	Points uint64
	Active bool
}

// ActionState is the contract-side view of an action.
type ActionState struct {
	ActivityID uint64
	Validated  bool
}

func (m *Mirror) GetActivity(ctx context.Context, activityID domain.ActivityID) (ActivityState, error) {
	var out []any
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getActivity", ContractID(activityID.String()))
	if err != nil {
		return ActivityState{}, errors.Wrap(err, "chain: getActivity failed")
	}
	return ActivityState{
		Title:  out[0].(string),
		Points: out[1].(uint64),
		Active: out[2].(bool),
	}, nil
}

func (m *Mirror) GetAction(ctx context.Context, actionID domain.ActionID) (ActionState, error) {
	var out []any
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAction", ContractID(actionID.String()))
	if err != nil {
		return ActionState{}, errors.Wrap(err, "chain: getAction failed")
	}
	return ActionState{
		ActivityID: out[0].(uint64),
		Validated:  out[1].(bool),
	}, nil
}

func (m *Mirror) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *m.opts
	opts.Context = ctx
	return &opts
}
