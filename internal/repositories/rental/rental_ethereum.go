package rental

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"gitlab.com/cptmarket/rental-router/internal/interfaces"
	"gitlab.com/cptmarket/rental-router/internal/lib"
)

const txTimeout = 2 * time.Minute

// RentalEthereum translates typed method calls into ABI-encoded transactions
// and queries against the CPT token, the agreement factory and individual
// rental agreements, and decodes their results and events.
type RentalEthereum struct {
	// config
	legacyTx    bool // use legacy transaction fee, for local node testing
	gasLimit    uint64
	tokenAddr   common.Address
	factoryAddr common.Address

	// state
	nonce        uint64
	mutex        sync.Mutex
	tokenABI     abi.ABI
	factoryABI   abi.ABI
	agreementABI abi.ABI

	// deps
	token   *bind.BoundContract
	factory *bind.BoundContract
	client  EthereumClient
	monitor *NodeMonitor
	log     interfaces.ILogger
}

func NewRentalEthereum(tokenAddr, factoryAddr common.Address, gasLimit uint64, client EthereumClient, monitor *NodeMonitor, log interfaces.ILogger) *RentalEthereum {
	tokenABI, err := abi.JSON(strings.NewReader(cptTokenABI))
	if err != nil {
		panic("invalid token ABI: " + err.Error())
	}
	factoryABI, err := abi.JSON(strings.NewReader(agreementFactoryABI))
	if err != nil {
		panic("invalid factory ABI: " + err.Error())
	}
	agreementABI, err := abi.JSON(strings.NewReader(rentalAgreementABI))
	if err != nil {
		panic("invalid agreement ABI: " + err.Error())
	}

	return &RentalEthereum{
		gasLimit:     gasLimit,
		tokenAddr:    tokenAddr,
		factoryAddr:  factoryAddr,
		tokenABI:     tokenABI,
		factoryABI:   factoryABI,
		agreementABI: agreementABI,
		token:        bind.NewBoundContract(tokenAddr, tokenABI, client, client, client),
		factory:      bind.NewBoundContract(factoryAddr, factoryABI, client, client, client),
		client:       client,
		monitor:      monitor,
		log:          log,
	}
}

func (g *RentalEthereum) SetLegacyTx(legacyTx bool) {
	g.legacyTx = legacyTx
}

// BalanceOf returns the CPT balance of the address as a decimal string. The
// read path never throws for a well-formed address: an unreachable node, a
// token address without deployed code or a failed call all degrade to "0".
func (g *RentalEthereum) BalanceOf(ctx context.Context, addr string) (string, error) {
	account, err := lib.ValidateAddr(addr)
	if err != nil {
		return "", err
	}

	if !g.monitor.CheckAvailability(ctx) {
		return "0", nil
	}

	code, err := g.client.CodeAt(ctx, g.tokenAddr, nil)
	if err != nil || len(code) == 0 {
		return "0", nil
	}

	var out []interface{}
	err = g.token.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", account)
	if err != nil {
		g.log.Debugf("balanceOf call failed for %s: %s", account.Hex(), err)
		return "0", nil
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return "0", nil
	}

	return lib.FormatTokenAmount(balance), nil
}

// CreateAgreement deploys a new rental agreement through the factory and
// waits for one confirmation. The deployed address is recovered from the
// AgreementCreated event of the confirmation receipt; when the event is
// absent the address is returned as the zero value, not an error.
func (g *RentalEthereum) CreateAgreement(ctx context.Context, userAddr, tokenAddr, vehicleID, rentAmount, depositAmount string, privKey string) (*CreateAgreementResult, error) {
	user, err := lib.ValidateAddr(userAddr)
	if err != nil {
		return nil, err
	}
	token, err := lib.ValidateAddr(tokenAddr)
	if err != nil {
		return nil, err
	}

	rent, err := lib.ParseTokenAmount(rentAmount)
	if err != nil {
		return nil, err
	}
	deposit, err := lib.ParseTokenAmount(depositAmount)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	opts, err := g.getTransactOpts(ctx, privKey)
	if err != nil {
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}

	tx, err := g.factory.Transact(opts, "createAgreement", user, token, vehicleID, rent, deposit)
	if err != nil {
		g.log.Error(err)
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, lib.WrapError(ErrTransactionFailed, fmt.Errorf("transaction %s reverted", tx.Hash()))
	}

	res := &CreateAgreementResult{
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}

	for _, l := range receipt.Logs {
		if l.Address == g.factoryAddr && len(l.Topics) > 1 && l.Topics[0] == AgreementCreatedHash {
			res.AgreementAddress = common.BytesToAddress(l.Topics[1].Bytes())
			break
		}
	}
	if res.AgreementAddress == (common.Address{}) {
		g.log.Warnf("AgreementCreated event missing from receipt of tx %s", tx.Hash())
	}

	return res, nil
}

func (g *RentalEthereum) SignAgreementAsOwner(ctx context.Context, agreementAddr string, privKey string) (*TxResult, error) {
	return g.transactAgreement(ctx, agreementAddr, privKey, "signAgreement")
}

func (g *RentalEthereum) MakePayment(ctx context.Context, agreementAddr, amount string, privKey string) (*TxResult, error) {
	value, err := lib.ParseTokenAmount(amount)
	if err != nil {
		return nil, err
	}
	return g.transactAgreement(ctx, agreementAddr, privKey, "makePayment", value)
}

func (g *RentalEthereum) CompleteAgreement(ctx context.Context, agreementAddr string, privKey string) (*TxResult, error) {
	return g.transactAgreement(ctx, agreementAddr, privKey, "completeAgreement")
}

func (g *RentalEthereum) CancelAgreement(ctx context.Context, agreementAddr string, privKey string) (*TxResult, error) {
	return g.transactAgreement(ctx, agreementAddr, privKey, "cancelAgreement")
}

// GetAgreementInfo reads the full agreement state in a single aggregate call
// and assembles a snapshot, converting fixed-point amounts back to decimal
// and mapping the numeric status by ordinal position.
func (g *RentalEthereum) GetAgreementInfo(ctx context.Context, agreementAddr string) (*AgreementInfo, error) {
	addr, err := lib.ValidateAddr(agreementAddr)
	if err != nil {
		return nil, err
	}

	if !g.monitor.CheckAvailability(ctx) {
		return nil, ErrNodeUnavailable
	}

	agreement := bind.NewBoundContract(addr, g.agreementABI, g.client, g.client, g.client)

	var out []interface{}
	err = agreement.Call(&bind.CallOpts{Context: ctx}, &out, "getAgreementDetails")
	if err != nil {
		return nil, err
	}

	info := &AgreementInfo{
		Address:       addr,
		Owner:         out[0].(common.Address),
		User:          out[1].(common.Address),
		VehicleID:     out[2].(string),
		RentAmount:    lib.FormatTokenAmount(out[3].(*big.Int)),
		DepositAmount: lib.FormatTokenAmount(out[4].(*big.Int)),
		StartsAt:      time.Unix(out[5].(*big.Int).Int64(), 0),
		EndsAt:        time.Unix(out[6].(*big.Int).Int64(), 0),
		Status:        AgreementStatus(out[7].(uint8)),
		OwnerSigned:   out[8].(bool),
		UserSigned:    out[9].(bool),
	}

	return info, nil
}

// GetPaymentHistory replays all historical PaymentMade events of the
// agreement. No pagination: the result is unbounded by event count.
func (g *RentalEthereum) GetPaymentHistory(ctx context.Context, agreementAddr string) ([]Payment, error) {
	addr, err := lib.ValidateAddr(agreementAddr)
	if err != nil {
		return nil, err
	}

	if !g.monitor.CheckAvailability(ctx) {
		return []Payment{}, nil
	}

	logs, err := g.client.FilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{addr},
		Topics:    [][]common.Hash{{PaymentMadeHash}},
	})
	if err != nil {
		return nil, err
	}

	agreement := bind.NewBoundContract(addr, g.agreementABI, g.client, g.client, g.client)

	payments := make([]Payment, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}

		event := struct {
			Payer     common.Address
			Amount    *big.Int
			Timestamp *big.Int
		}{}
		err := agreement.UnpackLog(&event, "PaymentMade", l)
		if err != nil {
			return nil, err
		}

		payments = append(payments, Payment{
			Payer:       event.Payer,
			Amount:      lib.FormatTokenAmount(event.Amount),
			PaidAt:      time.Unix(event.Timestamp.Int64(), 0),
			TxHash:      l.TxHash,
			BlockNumber: l.BlockNumber,
		})
	}

	return payments, nil
}

// GetGasPrice is best-effort and returns nil instead of propagating errors
func (g *RentalEthereum) GetGasPrice(ctx context.Context) *GasPrice {
	if !g.monitor.CheckAvailability(ctx) {
		return nil
	}

	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil
	}

	res := &GasPrice{GasPrice: gasPrice}

	tip, err := g.client.SuggestGasTipCap(ctx)
	if err != nil {
		return res
	}
	res.MaxPriorityFeePerGas = tip

	head, err := g.client.HeaderByNumber(ctx, nil)
	if err == nil && head.BaseFee != nil {
		res.MaxFeePerGas = new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
	} else {
		res.MaxFeePerGas = new(big.Int).Add(gasPrice, tip)
	}

	return res
}

// GetTransactionReceipt is a degradable read: it returns nil without error
// when the node is unreachable
func (g *RentalEthereum) GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if !g.monitor.CheckAvailability(ctx) {
		return nil, nil
	}
	return g.client.TransactionReceipt(ctx, txHash)
}

func (g *RentalEthereum) transactAgreement(ctx context.Context, agreementAddr string, privKey string, method string, args ...interface{}) (*TxResult, error) {
	addr, err := lib.ValidateAddr(agreementAddr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	opts, err := g.getTransactOpts(ctx, privKey)
	if err != nil {
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}

	agreement := bind.NewBoundContract(addr, g.agreementABI, g.client, g.client, g.client)

	tx, err := agreement.Transact(opts, method, args...)
	if err != nil {
		g.log.Error(err)
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, lib.WrapError(ErrTransactionFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, lib.WrapError(ErrTransactionFailed, fmt.Errorf("%s: transaction %s reverted", method, tx.Hash()))
	}

	g.log.Debugf("%s confirmed, agreement %s, tx %s, gas used %d", method, addr.Hex(), tx.Hash(), receipt.GasUsed)

	return &TxResult{
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Status:      TxStatusConfirmed,
	}, nil
}

func (g *RentalEthereum) getTransactOpts(ctx context.Context, privKey string) (*bind.TransactOpts, error) {
	privateKey, err := crypto.HexToECDSA(privKey)
	if err != nil {
		return nil, err
	}

	chainId, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	transactOpts, err := bind.NewKeyedTransactorWithChainID(privateKey, chainId)
	if err != nil {
		return nil, err
	}

	if g.legacyTx {
		gasPrice, err := g.client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		transactOpts.GasPrice = gasPrice
	}

	fromAddr, err := lib.PrivKeyToAddr(privateKey)
	if err != nil {
		return nil, err
	}

	nonce, err := g.getNonce(ctx, fromAddr)
	if err != nil {
		return nil, err
	}

	transactOpts.Value = big.NewInt(0)
	transactOpts.Nonce = nonce
	transactOpts.GasLimit = g.gasLimit
	transactOpts.Context = ctx

	return transactOpts, nil
}

func (g *RentalEthereum) getNonce(ctx context.Context, from common.Address) (*big.Int, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	nonce := &big.Int{}
	blockchainNonce, err := g.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nonce, err
	}

	if g.nonce > blockchainNonce {
		nonce.SetUint64(g.nonce)
	} else {
		nonce.SetUint64(blockchainNonce)
	}

	g.nonce = nonce.Uint64() + 1

	return nonce, nil
}
