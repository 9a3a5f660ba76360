package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const pathMember = "/extv1/member"

// Members looks up loyalty members.
type Members struct {
	s transport.Sender
}

func NewMembers(s transport.Sender) *Members { return &Members{s: s} }

// Get searches by member code, phone number or email. It returns nil and no
// error when nothing matches.
func (c *Members) Get(ctx context.Context, search string) (*models.MemberResult, error) {
	return optional[models.MemberResult](ctx, c.s,
		bearerGet("member.get", pathMember, models.MemberParams{SearchMember: search}))
}
