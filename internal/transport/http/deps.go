package http

import (
	"github.com/eshop-relay/internal/application/auth"
	"github.com/eshop-relay/internal/application/chat"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Ledger    auth.Ledger
	Identity  auth.IdentityGateway
	Mailer    auth.Mailer
	Generator chat.Generator
}
