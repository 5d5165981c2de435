package pgsql

import (
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        newPgxTxManager(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		OrganisationRepo: newPgxOrganisationRepository(dbPool),
		MembershipRepo:   newPgxMembershipRepository(dbPool),
		InvitationRepo:   newPgxInvitationRepository(dbPool),
		ActivityRepo:     newPgxActivityRepository(dbPool),
	}
}
