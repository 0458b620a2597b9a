package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

// EventTypeSource resolves event types on the upstream platform.
type EventTypeSource interface {
	ListEventTypes(ctx context.Context) ([]models.EventType, error)
	FindEventTypeBySlug(ctx context.Context, slug string) (*models.EventType, error)
}

// ProfileSource returns the upstream account profile.
type ProfileSource interface {
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
}

// BookingCreator forwards bookings upstream.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
}

type freeScheduleProvider interface {
	FreeScheduleOn(ctx context.Context, username string, date time.Time) ([]models.FreeInterval, error)
}

// BookingService forwards bookings to the upstream platform, resolving
// event-type slugs and attendee identity first. When the requested slot is
// taken it answers with same-day alternatives instead of a bare failure.
type BookingService struct {
	eventTypes   EventTypeSource
	profile      ProfileSource
	bookings     BookingCreator
	availability freeScheduleProvider
	cache        *CacheService
	logger       *zap.Logger
}

// NewBookingService constructs the booking flow. cache may be nil.
func NewBookingService(eventTypes EventTypeSource, profile ProfileSource, bookings BookingCreator, availability freeScheduleProvider, cache *CacheService, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		eventTypes:   eventTypes,
		profile:      profile,
		bookings:     bookings,
		availability: availability,
		cache:        cache,
		logger:       logger,
	}
}

// Create validates and forwards a booking. On the upstream slot-taken
// signal it returns a result carrying suggestions and no booking.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error) {
	start := strings.TrimSpace(req.Start)
	if start == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start is required")
	}
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start must be an ISO-8601 timestamp")
	}

	eventTypeID := req.EventTypeID
	if eventTypeID == 0 {
		slug := strings.TrimSpace(req.EventTypeSlug)
		if slug == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "eventTypeId or eventTypeSlug is required")
		}
		eventType, err := s.resolveEventType(ctx, slug)
		if err != nil {
			return nil, err
		}
		eventTypeID = eventType.ID
	}

	user, err := s.profile.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	language := user.Locale
	if language == "" {
		language = "en"
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	metadata["clientReference"] = uuid.NewString()

	payload := models.BookingRequest{
		EventTypeID: eventTypeID,
		Start:       start,
		End:         req.End,
		Responses: models.BookingResponses{
			Name:     user.Name,
			Email:    user.Email,
			Location: req.Location,
		},
		TimeZone:    user.TimeZone,
		Language:    language,
		Title:       req.Title,
		Description: req.Description,
		Metadata:    metadata,
	}

	booking, err := s.bookings.CreateBooking(ctx, payload)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrSlotUnavailable.Code {
			return s.suggestAlternatives(ctx, user.Username, startTime, err)
		}
		return nil, err
	}

	return &dto.BookingResult{Booking: booking}, nil
}

// EventTypes lists the bookable event types.
func (s *BookingService) EventTypes(ctx context.Context) ([]models.EventType, error) {
	return s.eventTypes.ListEventTypes(ctx)
}

func (s *BookingService) suggestAlternatives(ctx context.Context, username string, day time.Time, cause error) (*dto.BookingResult, error) {
	free, err := s.availability.FreeScheduleOn(ctx, username, day)
	if err != nil {
		s.logger.Warn("failed to compute booking alternatives",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, cause
	}
	return &dto.BookingResult{Suggestions: dto.NewFreeSlots(free)}, nil
}

func (s *BookingService) resolveEventType(ctx context.Context, slug string) (*models.EventType, error) {
	cacheKey := "calcom:event-type:" + slug

	var cached models.EventType
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	eventType, err := s.eventTypes.FindEventTypeBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKey, eventType, 0)
	return eventType, nil
}
