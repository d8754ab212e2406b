package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMemory   = "memory"
)

// timeLayout is fixed width so TEXT timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

type txKey struct{}

// SQLStore implements usecases.CardRepository on SQLite or PostgreSQL.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Config selects and tunes the database.
type Config struct {
	Driver       string // sqlite3, pgx or memory
	DSN          string
	MaxOpenConns int
	AutoMigrate  bool
}

// OpenSQL connects to the database described by cfg and, if cfg.AutoMigrate
// is set, brings the schema up to date.
func OpenSQL(ctx context.Context, cfg Config) (*SQLStore, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, NewStoreError("OpenSQL", "", "", cfg.Driver, ErrUnsupportedDriver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, NewStoreError("OpenSQL", "", "", err.Error(), ErrConnectionFailed)
	}

	// SQLite allows a single writer, and every connection to ":memory:"
	// would otherwise get its own empty database.
	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, NewStoreError("OpenSQL", "", "", err.Error(), ErrConnectionFailed)
	}

	s := &SQLStore{db: db, now: func() time.Time { return time.Now().UTC() }}
	if cfg.AutoMigrate {
		if err := s.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
	}

	log.GlobalInfo("database connected", "driver", cfg.Driver)
	return s, nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = ":memory:"
	}
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate applies all pending schema migrations.
func (s *SQLStore) Migrate() error {
	if err := runMigrations(s.db.DB, s.db.DriverName()); err != nil {
		return NewStoreError("Migrate", "", "", err.Error(), ErrMigrationFailed)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// exec returns the transaction carried by ctx, or the pool.
func (s *SQLStore) exec(ctx context.Context) executor {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return s.db
}

func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("InTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.GlobalErrorCtx(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("InTx", "", "", "failed to commit transaction", ErrTxFailed)
	}
	return nil
}

// lockRows reports whether reads should lock the card row until the
// transaction ends. SQLite already serializes writers on its single
// connection.
func (s *SQLStore) lockRows(ctx context.Context) bool {
	_, inTx := ctx.Value(txKey{}).(*sqlx.Tx)
	return inTx && s.db.DriverName() == DriverPostgres
}

type cardRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	JobTitle  string `db:"job_title"`
	Company   string `db:"company"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Website   string `db:"website"`
	Bio       string `db:"bio"`
	Street    string `db:"street"`
	City      string `db:"city"`
	State     string `db:"state"`
	ZipCode   string `db:"zip_code"`
	Country   string `db:"country"`
	IsPublic  bool   `db:"is_public"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type socialAccountRow struct {
	ID             string `db:"id"`
	BusinessCardID string `db:"business_card_id"`
	Platform       string `db:"platform"`
	Username       string `db:"username"`
	ProfileURL     string `db:"profile_url"`
	IsValid        bool   `db:"is_valid"`
	DisplayOrder   int    `db:"display_order"`
	CreatedAt      string `db:"created_at"`
}

const cardColumns = `id, user_id, title, first_name, last_name, job_title, company, email,
	phone, website, bio, street, city, state, zip_code, country, is_public, created_at, updated_at`

const socialAccountColumns = `id, business_card_id, platform, username, profile_url, is_valid,
	display_order, created_at`

func (s *SQLStore) ListCardsByUser(ctx context.Context, userID string) ([]domain.BusinessCard, error) {
	exec := s.exec(ctx)

	var rows []cardRow
	query := exec.Rebind(`SELECT ` + cardColumns + ` FROM business_cards
		WHERE user_id = ? ORDER BY created_at DESC, id`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, NewStoreError("ListCardsByUser", "card", "", err.Error(), err)
	}
	if len(rows) == 0 {
		return []domain.BusinessCard{}, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	accounts, err := s.socialAccountsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.BusinessCard, len(rows))
	for i := range rows {
		cards[i] = rowToCard(&rows[i])
		if accts, ok := accounts[rows[i].ID]; ok {
			cards[i].SocialAccounts = accts
		}
	}
	return cards, nil
}

func (s *SQLStore) GetCard(ctx context.Context, cardID string) (*domain.BusinessCard, error) {
	exec := s.exec(ctx)

	var row cardRow
	query := `SELECT ` + cardColumns + ` FROM business_cards WHERE id = ?`
	if s.lockRows(ctx) {
		query += ` FOR UPDATE`
	}
	query = exec.Rebind(query)
	if err := exec.GetContext(ctx, &row, query, cardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCard", "card", cardID, "card not found", domain.ErrCardNotFound)
		}
		return nil, NewStoreError("GetCard", "card", cardID, err.Error(), err)
	}

	accounts, err := s.socialAccountsFor(ctx, []string{cardID})
	if err != nil {
		return nil, err
	}

	card := rowToCard(&row)
	if accts, ok := accounts[cardID]; ok {
		card.SocialAccounts = accts
	}
	return &card, nil
}

func (s *SQLStore) socialAccountsFor(ctx context.Context, cardIDs []string) (map[string][]domain.SocialAccount, error) {
	exec := s.exec(ctx)

	query, args, err := sqlx.In(`SELECT `+socialAccountColumns+` FROM social_accounts
		WHERE business_card_id IN (?) ORDER BY display_order, created_at, id`, cardIDs)
	if err != nil {
		return nil, NewStoreError("ListSocialAccounts", "social_account", "", err.Error(), err)
	}

	var rows []socialAccountRow
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, NewStoreError("ListSocialAccounts", "social_account", "", err.Error(), err)
	}

	out := make(map[string][]domain.SocialAccount, len(cardIDs))
	for i := range rows {
		out[rows[i].BusinessCardID] = append(out[rows[i].BusinessCardID], rowToSocialAccount(&rows[i]))
	}
	return out, nil
}

func (s *SQLStore) CreateCard(ctx context.Context, card *domain.BusinessCard) error {
	now := s.now()
	card.ID = uuid.NewString()
	card.CreatedAt = now
	card.UpdatedAt = now

	query := `INSERT INTO business_cards (` + cardColumns + `) VALUES (
		:id, :user_id, :title, :first_name, :last_name, :job_title, :company, :email,
		:phone, :website, :bio, :street, :city, :state, :zip_code, :country, :is_public,
		:created_at, :updated_at)`
	if _, err := s.exec(ctx).NamedExecContext(ctx, query, cardToRow(card)); err != nil {
		return NewStoreError("CreateCard", "card", card.ID, err.Error(), err)
	}
	return nil
}

func (s *SQLStore) UpdateCard(ctx context.Context, card *domain.BusinessCard) error {
	card.UpdatedAt = s.now()

	query := `UPDATE business_cards SET
		title = :title, first_name = :first_name, last_name = :last_name,
		job_title = :job_title, company = :company, email = :email, phone = :phone,
		website = :website, bio = :bio, street = :street, city = :city, state = :state,
		zip_code = :zip_code, country = :country, is_public = :is_public,
		updated_at = :updated_at
		WHERE id = :id`
	res, err := s.exec(ctx).NamedExecContext(ctx, query, cardToRow(card))
	if err != nil {
		return NewStoreError("UpdateCard", "card", card.ID, err.Error(), err)
	}
	return expectOne(res, "UpdateCard", "card", card.ID, domain.ErrCardNotFound)
}

func (s *SQLStore) SetCardVisibility(ctx context.Context, cardID string, public bool) error {
	exec := s.exec(ctx)
	query := exec.Rebind(`UPDATE business_cards SET is_public = ?, updated_at = ? WHERE id = ?`)
	res, err := exec.ExecContext(ctx, query, public, formatTime(s.now()), cardID)
	if err != nil {
		return NewStoreError("SetCardVisibility", "card", cardID, err.Error(), err)
	}
	return expectOne(res, "SetCardVisibility", "card", cardID, domain.ErrCardNotFound)
}

// DeleteCard relies on ON DELETE CASCADE to remove the social accounts.
func (s *SQLStore) DeleteCard(ctx context.Context, cardID string) error {
	exec := s.exec(ctx)
	res, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM business_cards WHERE id = ?`), cardID)
	if err != nil {
		return NewStoreError("DeleteCard", "card", cardID, err.Error(), err)
	}
	return expectOne(res, "DeleteCard", "card", cardID, domain.ErrCardNotFound)
}

func (s *SQLStore) GetSocialAccount(ctx context.Context, accountID string) (*domain.SocialAccount, error) {
	exec := s.exec(ctx)

	var row socialAccountRow
	query := exec.Rebind(`SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE id = ?`)
	if err := exec.GetContext(ctx, &row, query, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetSocialAccount", "social_account", accountID, "social account not found", domain.ErrSocialAccountNotFound)
		}
		return nil, NewStoreError("GetSocialAccount", "social_account", accountID, err.Error(), err)
	}

	acct := rowToSocialAccount(&row)
	return &acct, nil
}

func (s *SQLStore) CreateSocialAccount(ctx context.Context, account *domain.SocialAccount) error {
	account.ID = uuid.NewString()
	account.CreatedAt = s.now()

	query := `INSERT INTO social_accounts (` + socialAccountColumns + `) VALUES (
		:id, :business_card_id, :platform, :username, :profile_url, :is_valid,
		:display_order, :created_at)`
	if _, err := s.exec(ctx).NamedExecContext(ctx, query, socialAccountToRow(account)); err != nil {
		// A missing parent surfaces as a foreign key violation.
		return NewStoreError("CreateSocialAccount", "social_account", account.ID, err.Error(), err)
	}
	return nil
}

func (s *SQLStore) UpdateSocialAccount(ctx context.Context, account *domain.SocialAccount) error {
	query := `UPDATE social_accounts SET
		platform = :platform, username = :username, profile_url = :profile_url,
		is_valid = :is_valid, display_order = :display_order
		WHERE id = :id`
	res, err := s.exec(ctx).NamedExecContext(ctx, query, socialAccountToRow(account))
	if err != nil {
		return NewStoreError("UpdateSocialAccount", "social_account", account.ID, err.Error(), err)
	}
	return expectOne(res, "UpdateSocialAccount", "social_account", account.ID, domain.ErrSocialAccountNotFound)
}

func (s *SQLStore) DeleteSocialAccount(ctx context.Context, accountID string) error {
	exec := s.exec(ctx)
	res, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM social_accounts WHERE id = ?`), accountID)
	if err != nil {
		return NewStoreError("DeleteSocialAccount", "social_account", accountID, err.Error(), err)
	}
	return expectOne(res, "DeleteSocialAccount", "social_account", accountID, domain.ErrSocialAccountNotFound)
}

func expectOne(res sql.Result, op, entity, id string, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return NewStoreError(op, entity, id, err.Error(), err)
	}
	if n == 0 {
		return NewStoreError(op, entity, id, entity+" not found", notFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t.UTC()
}

func cardToRow(c *domain.BusinessCard) cardRow {
	return cardRow{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		FirstName: c.PersonalInfo.FirstName,
		LastName:  c.PersonalInfo.LastName,
		JobTitle:  c.PersonalInfo.JobTitle,
		Company:   c.PersonalInfo.Company,
		Email:     c.PersonalInfo.Email,
		Phone:     c.PersonalInfo.Phone,
		Website:   c.PersonalInfo.Website,
		Bio:       c.PersonalInfo.Bio,
		Street:    c.Address.Street,
		City:      c.Address.City,
		State:     c.Address.State,
		ZipCode:   c.Address.ZipCode,
		Country:   c.Address.Country,
		IsPublic:  c.IsPublic,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func rowToCard(r *cardRow) domain.BusinessCard {
	return domain.BusinessCard{
		ID:     r.ID,
		UserID: r.UserID,
		Title:  r.Title,
		PersonalInfo: domain.PersonalInfo{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			JobTitle:  r.JobTitle,
			Company:   r.Company,
			Email:     r.Email,
			Phone:     r.Phone,
			Website:   r.Website,
			Bio:       r.Bio,
		},
		Address: domain.Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
			Country: r.Country,
		},
		IsPublic:       r.IsPublic,
		SocialAccounts: []domain.SocialAccount{},
		CreatedAt:      parseTime(r.CreatedAt),
		UpdatedAt:      parseTime(r.UpdatedAt),
	}
}

func socialAccountToRow(a *domain.SocialAccount) socialAccountRow {
	return socialAccountRow{
		ID:             a.ID,
		BusinessCardID: a.BusinessCardID,
		Platform:       a.Platform,
		Username:       a.Username,
		ProfileURL:     a.ProfileURL,
		IsValid:        a.IsValid,
		DisplayOrder:   a.DisplayOrder,
		CreatedAt:      formatTime(a.CreatedAt),
	}
}

func rowToSocialAccount(r *socialAccountRow) domain.SocialAccount {
	return domain.SocialAccount{
		ID:             r.ID,
		BusinessCardID: r.BusinessCardID,
		Platform:       r.Platform,
		Username:       r.Username,
		ProfileURL:     r.ProfileURL,
		IsValid:        r.IsValid,
		DisplayOrder:   r.DisplayOrder,
		CreatedAt:      parseTime(r.CreatedAt),
	}
}
