package models

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// MemberParams searches GET /extv1/member by code, phone or email.
type MemberParams struct {
	SearchMember string `validate:"required"`
}

func (p MemberParams) Values() url.Values {
	q := query{}
	q.str("searchMember", p.SearchMember)
	return url.Values(q)
}

type MemberResult struct {
	MemberCode    string          `json:"memberCode"`
	MemberName    string          `json:"memberName"`
	MemberPhone   string          `json:"memberPhone"`
	MemberEmail   string          `json:"memberEmail"`
	Balance       decimal.Decimal `json:"balance"`
	ActiveBalance decimal.Decimal `json:"activeBalance"`
}
