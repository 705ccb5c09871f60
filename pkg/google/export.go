package google

import (
	"context"
	"fmt"

	"github.com/padelcoach/padelcoach/pkg/user"
	"github.com/padelcoach/padelcoach/pkg/weekly_plan"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const exportDateFormat = "2006-01-02"

type CalendarItem struct {
	ID      string
	Summary string
}

// Exporter pushes the items of a weekly plan to a Google Calendar as
// all-day events, one per scheduled item.
type Exporter interface {
	ExportWeek(ctx context.Context, week weekly_plan.Week, calendarId string) (int, error)
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
}

type ExporterImpl struct {
	auth  *GoogleAuth
	plans weekly_plan.Service
}

func NewExporter(auth *GoogleAuth, plans weekly_plan.Service) *ExporterImpl {
	return &ExporterImpl{auth: auth, plans: plans}
}

func (e *ExporterImpl) ExportWeek(ctx context.Context, week weekly_plan.Week, calendarId string) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	service, err := e.prepareGoogleService(ctx, userId)
	if err != nil {
		return 0, err
	}

	view, err := e.plans.GetWeeklyPlan(ctx, week)
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, day := range view.Days {
		date := day.Date.Format(exportDateFormat)
		for _, item := range day.Items {
			event := &calendar.Event{
				Summary:     eventSummary(item),
				Description: item.Notes,
				Start:       &calendar.EventDateTime{Date: date},
				End:         &calendar.EventDateTime{Date: date},
			}
			if _, err := service.Events.Insert(calendarId, event).Do(); err != nil {
				err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
				log.Error(err)
				return exported, err
			}
			exported++
		}
	}
	log.Debugf("Exported %d plan items of %s to calendar %s", exported, week, calendarId)
	return exported, nil
}

func (e *ExporterImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := e.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var googleCalendars []CalendarItem
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

func (e *ExporterImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := e.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}

// eventSummary picks the resolved catalog title, falling back to the raw
// external id when the item did not resolve.
func eventSummary(item weekly_plan.PlanItemView) string {
	switch {
	case item.Module != nil:
		return item.Module.Title
	case item.Exercise != nil:
		return item.Exercise.Title
	default:
		return item.ExternalId
	}
}
