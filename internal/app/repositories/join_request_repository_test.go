package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

func TestJoinRequestRepository_Create_DuplicateIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO club_join_requests")).
		WithArgs(int64(2), int64(3), "let me in").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: joinRequestUniqueConstraint})

	err = NewJoinRequestRepository(mock).Create(context.Background(), &models.ClubJoinRequest{
		UserID: 2, ClubID: 3, Message: "let me in",
	})

	assert.ErrorIs(t, err, apperrors.ErrJoinRequestExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepository_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		column   string
		affected int64
		wantErr  error
	}{
		{name: "approve pending", approved: true, column: "is_approved", affected: 1},
		{name: "reject pending", approved: false, column: "is_rejected", affected: 1},
		{name: "already handled", approved: true, column: "is_approved", affected: 0, wantErr: apperrors.ErrJoinRequestHandled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(regexp.QuoteMeta("UPDATE club_join_requests SET "+tt.column+" = $1")).
				WithArgs(true, int64(11), false, false).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			err = NewJoinRequestRepository(mock).Resolve(context.Background(), 11, tt.approved)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
