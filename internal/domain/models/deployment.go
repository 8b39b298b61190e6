package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeploymentMethod represents how the contract was deployed
type DeploymentMethod string

const (
	DeploymentMethodCreate DeploymentMethod = "CREATE"
)

// ReceiptStatus mirrors the execution status of a mined transaction
type ReceiptStatus uint64

const (
	ReceiptStatusFailed     ReceiptStatus = ReceiptStatus(types.ReceiptStatusFailed)
	ReceiptStatusSuccessful ReceiptStatus = ReceiptStatus(types.ReceiptStatusSuccessful)
)

// Signer is an account able to authorize and pay for transactions
type Signer struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`

	// NewTransactor builds transaction options signed by this account for the given chain
	NewTransactor func(chainID *big.Int) (*bind.TransactOpts, error) `json:"-"`
}

// PendingDeployment is a submitted but not yet confirmed deployment transaction
type PendingDeployment struct {
	Artifact    string             `json:"artifact"`
	Deployer    common.Address     `json:"deployer"`
	Address     common.Address     `json:"address"` // predicted from deployer nonce
	TxHash      common.Hash        `json:"txHash"`
	Transaction *types.Transaction `json:"-"`
	SubmittedAt time.Time          `json:"submittedAt"`
}

// Receipt is the confirmation of a mined transaction
type Receipt struct {
	TxHash          common.Hash    `json:"txHash"`
	Status          ReceiptStatus  `json:"status"`
	ContractAddress common.Address `json:"contractAddress"`
	BlockNumber     uint64         `json:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed"`
}

// Succeeded reports whether the transaction executed without reverting
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

// DeployedContract is a confirmed deployment
type DeployedContract struct {
	Artifact    string           `json:"artifact"`
	Address     common.Address   `json:"address"`
	Deployer    common.Address   `json:"deployer"`
	TxHash      common.Hash      `json:"txHash"`
	BlockNumber uint64           `json:"blockNumber"`
	GasUsed     uint64           `json:"gasUsed"`
	Method      DeploymentMethod `json:"method"`
	ConfirmedAt time.Time        `json:"confirmedAt"`
}
