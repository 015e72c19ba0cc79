package calendar

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const eventTimeLayout = "2006-01-02T15:04:05"

// GoogleProvider talks to one Google calendar through a service account.
type GoogleProvider struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleProvider builds the calendar client from service-account
// credentials. The account must have been shared on the target calendar.
func NewGoogleProvider(ctx context.Context, clientEmail, privateKey, calendarID string) (*GoogleProvider, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("GOOGLE_CALENDAR_ID no configurado")
	}
	if clientEmail == "" || privateKey == "" {
		return nil, fmt.Errorf("credenciales de Google Calendar incompletas")
	}

	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{gcal.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("no se pudo crear el cliente de calendario: %w", err)
	}
	return &GoogleProvider{svc: svc, calendarID: calendarID}, nil
}

func (p *GoogleProvider) InsertEvent(ctx context.Context, ev Event) (EventRef, error) {
	res, err := p.svc.Events.Insert(p.calendarID, toGoogleEvent(ev)).Context(ctx).Do()
	if err != nil {
		return EventRef{}, mapGoogleErr(err)
	}
	return EventRef{ID: res.Id, Link: res.HtmlLink}, nil
}

func (p *GoogleProvider) ListEvents(ctx context.Context, query string) ([]Event, error) {
	res, err := p.svc.Events.List(p.calendarID).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleErr(err)
	}
	events := make([]Event, 0, len(res.Items))
	for _, it := range res.Items {
		events = append(events, Event{
			ID:          it.Id,
			Summary:     it.Summary,
			Description: it.Description,
		})
	}
	return events, nil
}

func (p *GoogleProvider) PatchEvent(ctx context.Context, eventID string, ev Event) (EventRef, error) {
	res, err := p.svc.Events.Patch(p.calendarID, eventID, toGoogleEvent(ev)).Context(ctx).Do()
	if err != nil {
		return EventRef{}, mapGoogleErr(err)
	}
	return EventRef{ID: res.Id, Link: res.HtmlLink}, nil
}

func toGoogleEvent(ev Event) *gcal.Event {
	return &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(eventTimeLayout),
			TimeZone: ev.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(eventTimeLayout),
			TimeZone: ev.TimeZone,
		},
	}
}

func mapGoogleErr(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
