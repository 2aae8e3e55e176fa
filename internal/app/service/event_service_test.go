package service

import (
	"context"
	"testing"
	"time"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[string]*model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*model.Event{}}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	cp := *event
	f.events[cp.ID] = &cp
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	out := []*model.Event{}
	for _, e := range f.events {
		if e.StartsAt.After(time.Now()) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *model.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *event
	f.events[cp.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func validEventRequest() CreateEventRequest {
	starts := time.Now().Add(48 * time.Hour)
	return CreateEventRequest{
		Title:       "Neighborhood Cleanup",
		Description: "Bring gloves.",
		Location:    "Main Park",
		StartsAt:    starts,
		EndsAt:      starts.Add(2 * time.Hour),
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	req := validEventRequest()
	req.EndsAt = req.StartsAt.Add(-time.Hour)
	_, err := svc.CreateEvent(ctx, "organizer-1", req)
	assert.ErrorIs(t, err, common.ErrValidation)

	req = validEventRequest()
	req.Location = ""
	_, err = svc.CreateEvent(ctx, "organizer-1", req)
	assert.ErrorIs(t, err, common.ErrValidation)

	event, err := svc.CreateEvent(ctx, "organizer-1", validEventRequest())
	require.NoError(t, err)
	assert.Equal(t, "organizer-1", event.OrganizerID)
	assert.Equal(t, "neighborhood-cleanup", event.Slug)
}

func TestUpdateEvent_OwnershipCheck(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "organizer-1", validEventRequest())
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, "intruder", event.ID, UpdateEventRequest{Location: strPtr("Elsewhere")})
	assert.ErrorIs(t, err, common.ErrForbidden)

	updated, err := svc.UpdateEvent(ctx, "organizer-1", event.ID, UpdateEventRequest{Location: strPtr("Elsewhere")})
	require.NoError(t, err)
	assert.Equal(t, "Elsewhere", updated.Location)

	_, err = svc.UpdateEvent(ctx, "organizer-1", "no-such-id", UpdateEventRequest{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteEvent_OwnershipCheck(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "organizer-1", validEventRequest())
	require.NoError(t, err)

	err = svc.DeleteEvent(ctx, "intruder", model.RoleUser, event.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.DeleteEvent(ctx, "organizer-1", model.RoleUser, event.ID)
	require.NoError(t, err)
}
