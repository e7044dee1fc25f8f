package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
)

type EventsRepo struct{ s *Store }

func eventExt(e event.Event) string { return e.ExternalID }

func (r *EventsRepo) Create(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	r.s.mu.Lock()
	r.s.events[e.ID] = e
	r.s.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) List(_ context.Context, f event.ListEventsFilter) ([]event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, e := range r.s.events {
		if f.Club != nil && e.Club != *f.Club {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b event.Event) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *EventsRepo) GetByID(_ context.Context, id string) (event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := byRef(r.s.events, id, eventExt)
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return e, nil
}

func (r *EventsRepo) Update(_ context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := byRef(r.s.events, id, eventExt)
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	e.Apply(req)
	r.s.events[e.ID] = e
	return e, nil
}

func (r *EventsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := byRef(r.s.events, id, eventExt)
	if !ok {
		return event.ErrNotFound
	}
	delete(r.s.events, e.ID)
	return nil
}

type ClubsRepo struct{ s *Store }

func clubExt(c club.Club) string { return c.ExternalID }

func (r *ClubsRepo) List(_ context.Context) ([]club.Club, error) {
	r.s.mu.RLock()
	out := values(r.s.clubs)
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b club.Club) int { return cmp.Compare(a.ExternalID, b.ExternalID) })
	return out, nil
}

func (r *ClubsRepo) GetByID(_ context.Context, id string) (club.Club, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := byRef(r.s.clubs, id, clubExt)
	if !ok {
		return club.Club{}, club.ErrNotFound
	}
	return c, nil
}

func (r *ClubsRepo) Create(_ context.Context, req club.CreateRequest) (club.Club, error) {
	c := club.NewFromCreateRequest(req)

	r.s.mu.Lock()
	r.s.clubs[c.ID] = c
	r.s.mu.Unlock()
	return c, nil
}

func (r *ClubsRepo) Update(_ context.Context, id string, req club.UpdateRequest) (club.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := byRef(r.s.clubs, id, clubExt)
	if !ok {
		return club.Club{}, club.ErrNotFound
	}
	c.Apply(req)
	r.s.clubs[c.ID] = c
	return c, nil
}

func (r *ClubsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := byRef(r.s.clubs, id, clubExt)
	if !ok {
		return club.ErrNotFound
	}
	delete(r.s.clubs, c.ID)
	return nil
}

type AnnouncementsRepo struct{ s *Store }

func announcementExt(a announcement.Announcement) string { return a.ExternalID }

func (r *AnnouncementsRepo) List(_ context.Context) ([]announcement.Announcement, error) {
	r.s.mu.RLock()
	out := values(r.s.announcements)
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b announcement.Announcement) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), b.CreatedAt.Compare(a.CreatedAt))
	})
	return out, nil
}

func (r *AnnouncementsRepo) GetByID(_ context.Context, id string) (announcement.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := byRef(r.s.announcements, id, announcementExt)
	if !ok {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return a, nil
}

func (r *AnnouncementsRepo) Create(_ context.Context, req announcement.CreateRequest) (announcement.Announcement, error) {
	a := announcement.NewFromCreateRequest(req)

	r.s.mu.Lock()
	r.s.announcements[a.ID] = a
	r.s.mu.Unlock()
	return a, nil
}

func (r *AnnouncementsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := byRef(r.s.announcements, id, announcementExt)
	if !ok {
		return announcement.ErrNotFound
	}
	delete(r.s.announcements, a.ID)
	return nil
}
