package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/otel/mocks"
	resMocks "github.com/Jaxki97/lussoautostudio/internal/domains/reservation/mocks"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model/dto"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/service"
	notifierMocks "github.com/Jaxki97/lussoautostudio/internal/notifier/mocks"
	"github.com/Jaxki97/lussoautostudio/internal/schedule"
	cacheMocks "github.com/Jaxki97/lussoautostudio/shared/cache/mocks"
	gDto "github.com/Jaxki97/lussoautostudio/shared/dto"
	"github.com/Jaxki97/lussoautostudio/shared/failure"
)

// Fixtures pin the calendar to early June 2025: the 5th is a Thursday, the
// 7th and 8th the next weekend.
var (
	today        = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	saturday     = "2025-06-07"
	monday       = "2025-06-09"
	pastSaturday = "2025-05-31"
	farSaturday  = "2025-07-12"
)

func newService(t *testing.T) (service.Reservation, *resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockNotifier := notifierMocks.NewMockNotifier(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Schedule.OpenHour = 8
	cfg.Schedule.CloseHour = 20
	cfg.Schedule.BookingWindowDays = 30

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockNotifier, schedule.FixedClock{Day: today})

	return svc, mockRepo, mockCache, mockNotifier
}

func activeReservation(id, date string, startHour, endHour int) model.Reservation {
	day, _ := schedule.ParseDay(date)

	return model.Reservation{
		ID:            id,
		Date:          day,
		StartHour:     startHour,
		EndHour:       endHour,
		DurationHours: endHour - startHour,
		Service:       "Full Detail",
		Name:          "Ana Petrova",
		Phone:         "+15550100",
		Vehicle:       "Audi RS6",
		Status:        model.StatusActive,
	}
}

func TestReservationService_Slots(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, _, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Slots(context.Background(), saturday, 1)
		assert.NoError(t, err)
	})

	t.Run("booked hours are classified against every candidate span", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockRepo.EXPECT().
			ListActiveByDate(gomock.Any(), gomock.Any()).
			Return([]model.Reservation{activeReservation("res-1", saturday, 13, 17)}, nil)

		res, err := svc.Slots(context.Background(), saturday, 1)
		assert.NoError(t, err)
		assert.Empty(t, res.Reason)
		assert.Len(t, res.Slots, 12)

		for _, slot := range res.Slots {
			if slot.StartHour >= 13 && slot.StartHour < 17 {
				assert.Equal(t, schedule.SlotBooked, slot.Status)
			} else {
				assert.Equal(t, schedule.SlotAvailable, slot.Status)
			}
		}
	})

	t.Run("weekday is a reason, not an error, and never touches the store", func(t *testing.T) {
		svc, _, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		res, err := svc.Slots(context.Background(), monday, 2)
		assert.NoError(t, err)
		assert.Equal(t, schedule.ReasonWeekday, res.Reason)
		assert.Empty(t, res.Slots)
	})

	t.Run("malformed date is a bad request", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Slots(context.Background(), "07-06-2025", 1)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			ListActiveByDate(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Slots(context.Background(), saturday, 1)
		assert.Error(t, err)
	})
}

func TestReservationService_Create(t *testing.T) {
	validReq := dto.CreateReservationRequest{
		Date:      saturday,
		StartHour: 9,
		Service:   "Full Detail",
		Name:      "Ana Petrova",
		Phone:     "+15550100",
		Vehicle:   "Audi RS6",
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier)
		wantCode  int
	}{
		{
			name: "successful booking",
			req:  validReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
				repo.EXPECT().
					CreateIfFree(gomock.Any(), gomock.Any()).
					Return(nil)
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "unknown service is rejected before any store access",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.Service = "Undercoating"
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duration disagreeing with the catalog is rejected, not corrected",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.DurationHours = 3
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name: "matching explicit duration is accepted",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.DurationHours = 4
				return req
			}(),
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
				repo.EXPECT().
					CreateIfFree(gomock.Any(), gomock.Any()).
					Return(nil)
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "reservation running past closing is a policy violation",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.StartHour = 18
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name: "weekday date is a policy violation",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.Date = monday
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name: "past date is a policy violation",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.Date = pastSaturday
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name: "date beyond the booking window is a policy violation",
			req: func() dto.CreateReservationRequest {
				req := validReq
				req.Date = farSaturday
				return req
			}(),
			setupMock: func(*resMocks.MockReservation, *cacheMocks.MockRedisCache, *notifierMocks.MockNotifier) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name: "overlap with an active reservation is a conflict",
			req:  validReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{activeReservation("res-1", saturday, 12, 14)}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "conflict detected at commit time surfaces as conflict",
			req:  validReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
				repo.EXPECT().
					CreateIfFree(gomock.Any(), gomock.Any()).
					Return(failure.Conflict("the requested time is no longer available"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, mockNotifier := newService(t)
			tt.setupMock(mockRepo, mockCache, mockNotifier)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.StartHour+4, res.EndHour)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier)
		wantCode  int
	}{
		{
			name: "successful cancel",
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
				repo.EXPECT().
					UpdateStatus(gomock.Any(), "res-1", model.StatusCancelled, gomock.Any()).
					Return(int64(1), nil)
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "unknown id is not found",
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(model.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancelling twice is a conflict",
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				cancelled := activeReservation("res-1", saturday, 9, 13)
				cancelled.Status = model.StatusCancelled

				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(cancelled, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "losing the race to a concurrent cancel is a conflict",
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
				repo.EXPECT().
					UpdateStatus(gomock.Any(), "res-1", model.StatusCancelled, gomock.Any()).
					Return(int64(0), nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, mockNotifier := newService(t)
			tt.setupMock(mockRepo, mockCache, mockNotifier)

			err := svc.Cancel(context.Background(), "res-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_Move(t *testing.T) {
	moveReq := dto.MoveReservationRequest{
		Date:      "2025-06-08",
		StartHour: 14,
	}

	tests := []struct {
		name      string
		req       dto.MoveReservationRequest
		setupMock func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier)
		wantCode  int
	}{
		{
			name: "successful move inherits the original duration",
			req:  moveReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
				repo.EXPECT().
					MoveIfFree(gomock.Any(), "res-1", gomock.Any(), 14, 18, gomock.Any()).
					Return(int64(1), nil)
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "its own slot does not block the move",
			req:  dto.MoveReservationRequest{Date: saturday, StartHour: 10},
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{activeReservation("res-1", saturday, 9, 13)}, nil)
				repo.EXPECT().
					MoveIfFree(gomock.Any(), "res-1", gomock.Any(), 10, 14, gomock.Any()).
					Return(int64(1), nil)
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "another reservation at the target is a conflict",
			req:  moveReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
				repo.EXPECT().
					ListActiveByDate(gomock.Any(), gomock.Any()).
					Return([]model.Reservation{activeReservation("res-2", "2025-06-08", 15, 17)}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "moving to a weekday is a policy violation",
			req:  dto.MoveReservationRequest{Date: monday, StartHour: 9},
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(activeReservation("res-1", saturday, 9, 13), nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown id is not found",
			req:  moveReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(model.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancelled reservations cannot move",
			req:  moveReq,
			setupMock: func(repo *resMocks.MockReservation, cache *cacheMocks.MockRedisCache, notifier *notifierMocks.MockNotifier) {
				cancelled := activeReservation("res-1", saturday, 9, 13)
				cancelled.Status = model.StatusCancelled

				repo.EXPECT().
					GetByID(gomock.Any(), "res-1").
					Return(cancelled, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, mockNotifier := newService(t)
			tt.setupMock(mockRepo, mockCache, mockNotifier)

			res, err := svc.Move(context.Background(), "res-1", tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.StartHour, res.StartHour)
				assert.Equal(t, tt.req.StartHour+4, res.EndHour)
			}
		})
	}
}

func TestReservationService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("successful list", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(1, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), params, gomock.Any(), gomock.Any()).
			Return([]model.Reservation{activeReservation("res-1", saturday, 9, 13)}, nil)

		res, err := svc.GetAll(context.Background(), params, saturday, model.StatusActive)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Reservations, 1)
	})

	t.Run("unknown status filter is a bad request", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.GetAll(context.Background(), params, "", "pending")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("malformed date filter is a bad request", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.GetAll(context.Background(), params, "June 7th", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			GetByID(gomock.Any(), "res-1").
			Return(activeReservation("res-1", saturday, 9, 13), nil)

		res, err := svc.Get(context.Background(), "res-1")
		assert.NoError(t, err)
		assert.Equal(t, "res-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			GetByID(gomock.Any(), "missing").
			Return(model.Reservation{}, nil)

		_, err := svc.Get(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
