package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitdesk/internal/database"
	"transitdesk/internal/models"
	"transitdesk/internal/query"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &database.DB{DB: db, Dialect: database.NewSQLiteDialect()}, mock
}

func operatorRows(ops ...models.Operator) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "description", "status", "source", "is_live", "created_at", "updated_at",
	})
	for _, op := range ops {
		rows.AddRow(op.ID, op.Name, op.Email, op.Description, op.Status, op.Source, op.IsLive, op.CreatedAt, op.UpdatedAt)
	}
	return rows
}

func TestOperatorList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperatorRepository(db)

	now := time.Now()
	spec := query.Spec{
		Filters: []query.Filter{
			{Field: "status", Pred: query.Equals("REGISTERED")},
		},
		Sort:      []query.SortKey{{Field: "name", Direction: query.Asc}},
		PageIndex: 1,
		PageSize:  2,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM operators WHERE status = ?")).
		WithArgs("REGISTERED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = ? ORDER BY name ASC LIMIT ? OFFSET ?")).
		WithArgs("REGISTERED", 2, 2).
		WillReturnRows(operatorRows(
			models.Operator{ID: 3, Name: "Coastal", Email: "c@x.example", Status: models.StatusRegistered, Source: models.SourceKupi, CreatedAt: now, UpdatedAt: now},
			models.Operator{ID: 4, Name: "Downtown", Email: "d@x.example", Status: models.StatusRegistered, Source: models.SourceCarma, CreatedAt: now, UpdatedAt: now},
		))

	page, err := repo.List(spec)
	require.NoError(t, err)

	assert.Equal(t, 5, page.TotalCount, "total count reflects filters, not the window")
	require.Len(t, page.Rows, 2)
	assert.LessOrEqual(t, len(page.Rows), spec.PageSize)
	assert.Equal(t, "Coastal", page.Rows[0].Name)
	assert.Equal(t, 1, page.PageIndex)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperatorRepository(db)

	spec := query.Spec{PageSize: 10}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM operators")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT .+ FROM operators").
		WithArgs(10, 0).
		WillReturnRows(operatorRows())

	page, err := repo.List(spec)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalCount)
	assert.Empty(t, page.Rows)
}

func TestOperatorGetByNameAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperatorRepository(db)

	mock.ExpectQuery("SELECT .+ FROM operators WHERE name = ?").
		WithArgs("Nobody").
		WillReturnError(sql.ErrNoRows)

	op, err := repo.GetByName("Nobody")
	require.NoError(t, err)
	assert.Nil(t, op, "absent operator should be nil, not an error")
}

func TestOperatorCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperatorRepository(db)

	mock.ExpectExec("INSERT INTO operators").
		WithArgs("Acme Bus", "ops@acme.example", "regional carrier", models.StatusInvited, models.SourceKupi, false).
		WillReturnResult(sqlmock.NewResult(7, 1))

	created, err := repo.Create(&models.Operator{
		Name:        "Acme Bus",
		Email:       "ops@acme.example",
		Description: "regional carrier",
		Status:      models.StatusInvited,
		Source:      models.SourceKupi,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestOperatorSessionUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperatorSessionRepository(db)

	expires := time.Now().Add(48 * time.Hour)
	mock.ExpectExec("INSERT INTO operator_sessions").
		WithArgs(int64(7), "ops@acme.example", "welcome", expires, "aa:bb", true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(&models.OperatorSession{
		OperatorID:   7,
		Email:        "ops@acme.example",
		Message:      "welcome",
		ExpiresAt:    expires,
		SessionToken: "aa:bb",
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
