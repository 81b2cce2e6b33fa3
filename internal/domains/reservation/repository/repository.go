package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/otel"
	"github.com/Jaxki97/lussoautostudio/infras/postgres"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model"
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	gDto "github.com/Jaxki97/lussoautostudio/shared/dto"
	"github.com/Jaxki97/lussoautostudio/shared/failure"
	"github.com/Jaxki97/lussoautostudio/shared/logger"

	"github.com/lib/pq"
)

const selectColumns = `id, res_date, start_hour, end_hour, duration_hours, service,
	customer_name, customer_phone, vehicle, city, notes, status, created_at, modified_at`

type Reservation interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]model.Reservation, error)
	GetByID(ctx context.Context, id string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, date *time.Time, status string) ([]model.Reservation, error)
	Count(ctx context.Context, date *time.Time, status string) (int, error)
	CreateIfFree(ctx context.Context, reservation model.Reservation) error
	MoveIfFree(ctx context.Context, id string, date time.Time, startHour, endHour int, modifiedAt time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id, status string, modifiedAt time.Time) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	cfg  *config.Config
	otel otel.Otel
}

func New(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Reservation {
	return &repositoryImpl{
		db:   db,
		cfg:  cfg,
		otel: otel,
	}
}

func (repo *repositoryImpl) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(repo.cfg.DB.Postgres.QueryTimeoutMS)*time.Millisecond)
}

func (repo *repositoryImpl) ListActiveByDate(ctx context.Context, date time.Time) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListActiveByDate")
	defer scope.End()

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE res_date = $1 AND status = $2 ORDER BY start_hour ASC`, selectColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	reservations := []model.Reservation{}

	err := repo.db.Read.SelectContext(ctx, &reservations, query, date, model.StatusActive)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	return reservations, nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetByID")
	defer scope.End()

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, selectColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var reservation model.Reservation

	err := repo.db.Read.GetContext(ctx, &reservation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return reservation, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	return reservation, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, date *time.Time, status string) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetAll")
	defer scope.End()

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	where, args := buildListFilter(date, status)

	ordering := "ORDER BY res_date ASC, start_hour ASC"
	if params.SortBy == constant.FieldCreatedAt {
		ordering = "ORDER BY created_at " + params.SortDir
	}

	limit := params.Limit
	offset := (params.Page - 1) * params.Limit

	query := fmt.Sprintf(`SELECT %s FROM %s %s %s LIMIT %d OFFSET %d`, selectColumns, model.TableName, where, ordering, limit, offset)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	reservations := []model.Reservation{}

	err := repo.db.Read.SelectContext(ctx, &reservations, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, date *time.Time, status string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Count")
	defer scope.End()

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	where, args := buildListFilter(date, status)

	query := fmt.Sprintf(`SELECT COUNT(id) FROM %s %s`, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.db.Read.GetContext(ctx, &count, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return count, nil
}

// CreateIfFree inserts the reservation only if its hour range is still free.
// The overlap re-check and the insert run in one transaction over the date's
// active rows (SELECT ... FOR UPDATE), so two concurrent submissions for the
// same hours cannot both pass. The reservations_no_overlap exclusion
// constraint backstops the same invariant inside the database.
func (repo *repositoryImpl) CreateIfFree(ctx context.Context, reservation model.Reservation) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateIfFree")
	defer scope.End()
	defer scope.TraceIfError(err)

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	free, err := hoursFreeLocked(ctx, tx, reservation.Date, reservation.StartHour, reservation.EndHour, "")
	if err != nil {
		return err
	}

	if !free {
		return failure.Conflict("the requested time is no longer available") //nolint:wrapcheck
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES
		(:id, :res_date, :start_hour, :end_hour, :duration_hours, :service,
		 :customer_name, :customer_phone, :vehicle, :city, :notes, :status, :created_at, :modified_at)`,
		model.TableName, selectColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, insert)

	if _, err = tx.NamedExecContext(ctx, insert, reservation); err != nil {
		logger.ErrorWithStack(err)

		return mapConstraintViolation(err, "failed to insert reservation")
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return mapConstraintViolation(err, "failed to commit reservation")
	}

	return nil
}

// MoveIfFree rewrites the schedule of an existing reservation under the same
// transactional guard as CreateIfFree. The moved record's own id is excluded
// from the overlap scan, so a reservation can land on hours it already holds.
func (repo *repositoryImpl) MoveIfFree(ctx context.Context, id string, date time.Time, startHour, endHour int, modifiedAt time.Time) (affected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.MoveIfFree")
	defer scope.End()
	defer scope.TraceIfError(err)

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	free, err := hoursFreeLocked(ctx, tx, date, startHour, endHour, id)
	if err != nil {
		return 0, err
	}

	if !free {
		return 0, failure.Conflict("the requested time is no longer available") //nolint:wrapcheck
	}

	update := fmt.Sprintf(`UPDATE %s SET res_date = $1, start_hour = $2, end_hour = $3, modified_at = $4
		WHERE id = $5 AND status = $6`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, update)

	result, err := tx.ExecContext(ctx, update, date, startHour, endHour, modifiedAt, id, model.StatusActive)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, mapConstraintViolation(err, "failed to move reservation")
	}

	affected, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return 0, mapConstraintViolation(err, "failed to commit move")
	}

	return affected, nil
}

func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id, status string, modifiedAt time.Time) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdateStatus")
	defer scope.End()

	ctx, cancel := repo.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`UPDATE %s SET status = $1, modified_at = $2 WHERE id = $3 AND status = $4`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, status, modifiedAt, id, model.StatusActive)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update reservation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// hoursFreeLocked locks the date's active rows that overlap [startHour,
// endHour) and reports whether none exist. excludeID skips the record being
// moved.
func hoursFreeLocked(ctx context.Context, tx execQueryer, date time.Time, startHour, endHour int, excludeID string) (bool, error) {
	// id is cast to text so an empty excludeID matches no row instead of
	// failing uuid parsing.
	query := fmt.Sprintf(`SELECT id FROM %s
		WHERE res_date = $1 AND status = $2 AND start_hour < $3 AND end_hour > $4 AND id::text <> $5
		FOR UPDATE`, model.TableName)

	conflicting := []string{}

	err := tx.SelectContext(ctx, &conflicting, query, date, model.StatusActive, endHour, startHour, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check reservation conflicts: %w", err)
	}

	return len(conflicting) == 0, nil
}

type execQueryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// mapConstraintViolation turns the exclusion/unique constraint errors raised
// by the no-overlap backstop into the conflict class; anything else stays an
// infrastructure fault.
func mapConstraintViolation(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if code == constant.PqErrorCodeExclusionViolation || code == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("the requested time is no longer available") //nolint:wrapcheck
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func buildListFilter(date *time.Time, status string) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if date != nil {
		args = append(args, *date)
		clauses = append(clauses, fmt.Sprintf("res_date = $%d", len(args)))
	}

	if status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	for i, clause := range clauses {
		if i == 0 {
			where = "WHERE " + clause
		} else {
			where = where + " AND " + clause
		}
	}

	return where, args
}
