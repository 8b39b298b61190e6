package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/blockverse-dao/bvdeploy/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ReadQuery is a read-only verification call and the label it is reported under
type ReadQuery struct {
	Label  string `json:"label"`
	Method string `json:"method"`
}

// ReadResult is the rendered outcome of a ReadQuery
type ReadResult struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Value  string `json:"value"`
}

// ProjectQueries are the checks run against a freshly deployed Project contract
var ProjectQueries = []ReadQuery{
	{Label: "Owner", Method: "owner"},
	{Label: "Member Count", Method: "memberCount"},
	{Label: "Proposal Count", Method: "proposalCount"},
}

// runReadQueries runs queries in order and stops at the first failure
func runReadQueries(ctx context.Context, caller ContractCaller, queries []ReadQuery) ([]ReadResult, error) {
	results := make([]ReadResult, 0, len(queries))
	for _, q := range queries {
		values, err := caller.Call(ctx, q.Method)
		if err != nil {
			return nil, domain.NewReadCallError(q.Method, err)
		}
		results = append(results, ReadResult{
			Label:  q.Label,
			Method: q.Method,
			Value:  formatValues(values),
		})
	}
	return results, nil
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case common.Address:
		return val.Hex()
	case *big.Int:
		return val.String()
	case common.Hash:
		return val.Hex()
	case [32]byte:
		return hexutil.Encode(val[:])
	case []byte:
		return hexutil.Encode(val)
	default:
		return fmt.Sprint(val)
	}
}
