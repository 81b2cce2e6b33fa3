package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/otel"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model/dto"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/repository"
	"github.com/Jaxki97/lussoautostudio/internal/notifier"
	"github.com/Jaxki97/lussoautostudio/internal/schedule"
	"github.com/Jaxki97/lussoautostudio/shared"
	"github.com/Jaxki97/lussoautostudio/shared/cache"
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	gDto "github.com/Jaxki97/lussoautostudio/shared/dto"
	"github.com/Jaxki97/lussoautostudio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSlots           = "reservation:slots"
	cacheGetAllReservations = "reservation:gets"
	cacheCountReservations  = "reservation:count"
)

type Reservation interface {
	Offerings(ctx context.Context) []schedule.Offering
	Slots(ctx context.Context, date string, durationHours int) (dto.SlotsResponse, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, date, status string) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, id string) error
	Move(ctx context.Context, id string, req dto.MoveReservationRequest) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	notifier  notifier.Notifier
	clock     schedule.Clock
	policy    schedule.Policy
	generator schedule.Generator
	catalog   schedule.Catalog
}

func New(repo repository.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, notifier notifier.Notifier, clock schedule.Clock) Reservation {
	policy := schedule.NewPolicy(cfg)

	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		notifier:  notifier,
		clock:     clock,
		policy:    policy,
		generator: schedule.NewGenerator(policy),
		catalog:   schedule.NewCatalog(),
	}
}

func (s *serviceImpl) Offerings(_ context.Context) []schedule.Offering {
	return s.catalog.Offerings()
}

// Slots serves the read path: advisory availability for one date and duration.
// A date the calendar policy rejects yields an empty slot list with a reason;
// a store failure stays an error so the caller can tell "closed that day"
// apart from "the database is down".
func (s *serviceImpl) Slots(ctx context.Context, date string, durationHours int) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := schedule.ParseDay(date)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetSlots, date, strconv.Itoa(durationHours))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	res = dto.SlotsResponse{
		Date:     date,
		Duration: durationHours,
	}

	// A policy-rejected date never touches the store.
	if reason, ok := s.policy.IsBookableDate(day, s.clock.Today()); !ok {
		slots, _, slotErr := s.generator.Slots(day, s.clock.Today(), durationHours, nil)
		if slotErr != nil {
			return res, slotErr
		}

		res.Reason = reason
		res.Slots = slots

		return res, nil
	}

	existing, err := s.repo.ListActiveByDate(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to read reservations for slot query")

		return res, fmt.Errorf("failed to read reservations for slot query: %w", err)
	}

	booked := make([]schedule.HourRange, len(existing))
	for i, reservation := range existing {
		booked[i] = reservation.HourRange()
	}

	slots, reason, err := s.generator.Slots(day, s.clock.Today(), durationHours, booked)
	if err != nil {
		return res, err
	}

	res.Reason = reason
	res.Slots = slots

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

// Create is the write path's single source of truth. It re-validates the
// proposed reservation from scratch regardless of what the slot read path
// last reported, in a fixed order so rejections are deterministic: structure,
// catalog, operating hours, calendar policy, then overlap last.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := schedule.ParseDay(req.Date)
	if err != nil {
		return res, err
	}

	durationHours, ok := s.catalog.DurationFor(req.Service)
	if !ok {
		return res, failure.BadRequestFromString(fmt.Sprintf("service %q is not offered", req.Service)) //nolint:wrapcheck
	}

	// A client-supplied duration that disagrees with the catalog is rejected,
	// not silently corrected.
	if req.DurationHours != 0 && req.DurationHours != durationHours {
		return res, failure.PolicyViolation(fmt.Sprintf("duration_hours must be %d for service %q", durationHours, req.Service)) //nolint:wrapcheck
	}

	candidate, err := schedule.NewHourRange(req.StartHour, req.StartHour+durationHours)
	if err != nil {
		return res, err
	}

	if err = s.validateSchedule(day, candidate); err != nil {
		return res, err
	}

	if err = s.rejectOverlap(ctx, day, candidate, ""); err != nil {
		return res, err
	}

	reservation := req.ToModel(day, durationHours, time.Now().UTC())

	if err = s.repo.CreateIfFree(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, err
	}

	s.afterWrite(ctx, notifier.EventCreated, reservation)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, date, status string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	var dateFilter *time.Time

	if date != "" {
		day, parseErr := schedule.ParseDay(date)
		if parseErr != nil {
			return res, parseErr
		}

		dateFilter = &day
	}

	if status != "" && status != model.StatusActive && status != model.StatusCancelled {
		return res, failure.BadRequestFromString("status must be one of active cancelled") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservations, params, date, status)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, dateFilter, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, dateFilter, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// Cancel flips an active reservation to cancelled. The transition is
// terminal; cancelling twice is a conflict, not a silent success.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation for cancel")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if reservation.Status == model.StatusCancelled {
		return failure.Conflict("reservation is already cancelled") //nolint:wrapcheck
	}

	affected, err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	// A concurrent cancel can win between the read and the guarded update.
	if affected == 0 {
		return failure.Conflict("reservation is already cancelled") //nolint:wrapcheck
	}

	reservation.Status = model.StatusCancelled
	s.afterWrite(ctx, notifier.EventCancelled, reservation)

	return nil
}

// Move reschedules an existing active reservation. The full validation
// sequence is re-applied to the new date and start hour with the duration
// inherited unchanged, and the record's own id is excluded from the overlap
// scan.
func (s *serviceImpl) Move(ctx context.Context, id string, req dto.MoveReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Move")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation for move")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if reservation.Status == model.StatusCancelled {
		return res, failure.Conflict("cannot move a cancelled reservation") //nolint:wrapcheck
	}

	day, err := schedule.ParseDay(req.Date)
	if err != nil {
		return res, err
	}

	candidate, err := schedule.NewHourRange(req.StartHour, req.StartHour+reservation.DurationHours)
	if err != nil {
		return res, err
	}

	if err = s.validateSchedule(day, candidate); err != nil {
		return res, err
	}

	if err = s.rejectOverlap(ctx, day, candidate, id); err != nil {
		return res, err
	}

	now := time.Now().UTC()

	affected, err := s.repo.MoveIfFree(ctx, id, day, candidate.Start, candidate.End, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to move reservation")

		return res, err
	}

	if affected == 0 {
		return res, failure.Conflict("reservation is no longer active") //nolint:wrapcheck
	}

	reservation.Date = day
	reservation.StartHour = candidate.Start
	reservation.EndHour = candidate.End
	reservation.ModifiedAt = now

	s.afterWrite(ctx, notifier.EventMoved, reservation)

	res.FromModel(reservation)

	return res, nil
}

// validateSchedule applies the operating-hours containment and calendar
// policy gates shared by create and move.
func (s *serviceImpl) validateSchedule(day time.Time, candidate schedule.HourRange) error {
	if !s.policy.WithinOperatingHours(candidate) {
		return failure.PolicyViolation(fmt.Sprintf("reservation must fit within operating hours %s-%s",
			schedule.HourLabel(s.policy.OpenHour), schedule.HourLabel(s.policy.CloseHour))) //nolint:wrapcheck
	}

	if reason, ok := s.policy.IsBookableDate(day, s.clock.Today()); !ok {
		switch reason {
		case schedule.ReasonPast:
			return failure.PolicyViolation("date is in the past") //nolint:wrapcheck
		case schedule.ReasonTooFar:
			return failure.PolicyViolation(fmt.Sprintf("date is more than %d days ahead", s.policy.BookingWindowDays)) //nolint:wrapcheck
		default:
			return failure.PolicyViolation("bookings are offered on weekends only") //nolint:wrapcheck
		}
	}

	return nil
}

// rejectOverlap re-reads current state and rejects a candidate that overlaps
// any active reservation for the date. This is the last gate before commit;
// the repository re-checks it once more atomically with the write.
func (s *serviceImpl) rejectOverlap(ctx context.Context, day time.Time, candidate schedule.HourRange, excludeID string) error {
	existing, err := s.repo.ListActiveByDate(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to read reservations for overlap check")

		return fmt.Errorf("failed to read reservations for overlap check: %w", err)
	}

	for _, reservation := range existing {
		if reservation.ID == excludeID {
			continue
		}

		if candidate.Overlaps(reservation.HourRange()) {
			return failure.Conflict(fmt.Sprintf("the %s-%s slot is already booked",
				schedule.HourLabel(candidate.Start), schedule.HourLabel(candidate.End))) //nolint:wrapcheck
		}
	}

	return nil
}

// afterWrite publishes the lifecycle event and drops every cache entry the
// write may have invalidated. Both are best effort and never fail the caller.
func (s *serviceImpl) afterWrite(ctx context.Context, event string, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, event, reservation)

		shared.InvalidateCaches(c, s.cache, cacheGetSlots)
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservations)
		shared.InvalidateCaches(c, s.cache, cacheCountReservations)
	}()
}
