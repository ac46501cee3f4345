package polymarket

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// endCursor is the next_cursor value that marks the last page.
const endCursor = "LTE="

type marketsPage struct {
	Data       []apiMarket `json:"data"`
	NextCursor *string     `json:"next_cursor"`
}

type apiMarket struct {
	ID             string      `json:"id"`
	ConditionID    string      `json:"condition_id"`
	ConditionIDAlt string      `json:"conditionId"`
	Question       string      `json:"question"`
	MarketSlug     string      `json:"market_slug"`
	Slug           string      `json:"slug"`
	Active         *bool       `json:"active"`
	Closed         bool        `json:"closed"`
	Tokens         []apiToken  `json:"tokens"`
	Liquidity      numberOrNil `json:"liquidity"`
	EndDateISO     *string     `json:"end_date_iso"`
}

type apiToken struct {
	TokenID string      `json:"token_id"`
	Outcome string      `json:"outcome"`
	Price   numberOrNil `json:"price"`
}

// numberOrNil accepts a JSON number, a numeric string or null.
type numberOrNil struct {
	Value *float64
}

func (n *numberOrNil) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			n.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		n.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// decodePage accepts either {data, next_cursor} or a bare array of markets.
func decodePage(body []byte) (marketsPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var data []apiMarket
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return marketsPage{}, err
		}
		return marketsPage{Data: data}, nil
	}

	var page marketsPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return marketsPage{}, err
	}
	return page, nil
}
