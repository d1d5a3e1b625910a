package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

// fakeSession records every authorized request and delegates responses to a
// per-test handler.
type fakeSession struct {
	mu      sync.Mutex
	calls   []sessionCall
	role    auth.Role
	user    *auth.User
	handler func(path string, opts api.RequestOptions, out any) error
}

type sessionCall struct {
	path string
	opts api.RequestOptions
}

func (f *fakeSession) Do(_ context.Context, path string, opts api.RequestOptions, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, sessionCall{path: path, opts: opts})
	f.mu.Unlock()
	if f.handler == nil {
		return nil
	}
	return f.handler(path, opts, out)
}

func (f *fakeSession) Role() auth.Role { return f.role }

func (f *fakeSession) UpdateUser(_ context.Context, user auth.User) {
	f.mu.Lock()
	f.user = &user
	f.mu.Unlock()
}

func (f *fakeSession) recorded() []sessionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sessionCall(nil), f.calls...)
}

// respond decodes canned JSON into the request's out target.
func respond(t *testing.T, out any, payload string) {
	t.Helper()
	if out == nil {
		return
	}
	require.NoError(t, json.Unmarshal([]byte(payload), out))
}

func TestProfileServiceRequiresSession(t *testing.T) {
	_, err := NewProfileService(ProfileServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session is required")
}

func TestUpdateClientProfileRefreshesUser(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			respond(t, out, `{
				"user": {"id": "u1", "email": "ada@example.com", "username": "ada", "role": "client"},
				"gender": "female"
			}`)
			return nil
		},
	}
	svc, err := NewProfileService(ProfileServiceOptions{Session: session})
	require.NoError(t, err)

	profile, err := svc.UpdateClientProfile(context.Background(), model.ClientProfileUpdate{
		Gender: strPtr("  female  "),
	})
	require.NoError(t, err)

	calls := session.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/client/me/", calls[0].path)
	assert.Equal(t, http.MethodPatch, calls[0].opts.Method)

	update, ok := calls[0].opts.Body.(model.ClientProfileUpdate)
	require.True(t, ok)
	require.NotNil(t, update.Gender)
	assert.Equal(t, "female", *update.Gender, "update should be normalized before sending")

	require.NotNil(t, session.user, "session user should be refreshed from the response")
	assert.Equal(t, "ada@example.com", session.user.Email)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, "female", *profile.Gender)
}

func TestUpdateClientProfileRejectsStylistSession(t *testing.T) {
	session := &fakeSession{role: auth.RoleStylist}
	svc, err := NewProfileService(ProfileServiceOptions{Session: session})
	require.NoError(t, err)

	_, err = svc.UpdateClientProfile(context.Background(), model.ClientProfileUpdate{})
	require.Error(t, err)
	assert.Empty(t, session.recorded(), "no request should reach the backend")
}

func TestUpdateStylistProfileRejectsNegativeExperience(t *testing.T) {
	session := &fakeSession{role: auth.RoleStylist}
	svc, err := NewProfileService(ProfileServiceOptions{Session: session})
	require.NoError(t, err)

	years := -1
	_, err = svc.UpdateStylistProfile(context.Background(), model.StylistProfileUpdate{
		YearsExperience: &years,
	})
	require.Error(t, err)
	assert.Empty(t, session.recorded())
}

func TestWardrobeCRUDPaths(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			switch opts.Method {
			case "", http.MethodGet:
				if path == "/client/wardrobe/" {
					respond(t, out, `{"results": [{"id": "7", "title": "Linen shirt"}]}`)
				} else {
					respond(t, out, `{"id": "7", "title": "Linen shirt"}`)
				}
			case http.MethodPost, http.MethodPatch:
				respond(t, out, `{"id": "7", "title": "Linen shirt"}`)
			}
			return nil
		},
	}
	svc, err := NewWardrobeService(WardrobeServiceOptions{Session: session})
	require.NoError(t, err)
	ctx := context.Background()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Linen shirt", items[0].Title)

	item, err := svc.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", item.ID)

	req := model.WardrobeItemRequest{
		Title:    " Linen shirt ",
		Category: "tops",
		Color:    "white",
		ImageURL: "https://img.example.com/7.jpg",
	}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)

	_, err = svc.Update(ctx, "7", req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "7"))

	calls := session.recorded()
	require.Len(t, calls, 5)
	assert.Equal(t, "/client/wardrobe/", calls[0].path)
	assert.Equal(t, "/client/wardrobe/7/", calls[1].path)
	assert.Equal(t, http.MethodPost, calls[2].opts.Method)
	assert.Equal(t, http.MethodPatch, calls[3].opts.Method)
	assert.Equal(t, http.MethodDelete, calls[4].opts.Method)

	body, ok := calls[2].opts.Body.(model.WardrobeItemRequest)
	require.True(t, ok)
	assert.Equal(t, "Linen shirt", body.Title, "request should be normalized before sending")
}

func TestWardrobeCreateRejectsIncompleteItem(t *testing.T) {
	session := &fakeSession{role: auth.RoleClient}
	svc, err := NewWardrobeService(WardrobeServiceOptions{Session: session})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), model.WardrobeItemRequest{Title: "hat"})
	require.Error(t, err)
	assert.Empty(t, session.recorded())
}

func TestWardrobeGetRequiresID(t *testing.T) {
	session := &fakeSession{role: auth.RoleClient}
	svc, err := NewWardrobeService(WardrobeServiceOptions{Session: session})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Empty(t, session.recorded())
}

func newRecommendationService(t *testing.T, session *fakeSession) *RecommendationService {
	t.Helper()
	wardrobe, err := NewWardrobeService(WardrobeServiceOptions{Session: session})
	require.NoError(t, err)
	svc, err := NewRecommendationService(RecommendationServiceOptions{
		Session:  session,
		Wardrobe: wardrobe,
	})
	require.NoError(t, err)
	return svc
}

func TestRecommendDefaultsOccasion(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			respond(t, out, `{"recommendations": []}`)
			return nil
		},
	}
	svc := newRecommendationService(t, session)

	_, err := svc.Recommend(context.Background(), model.RecommendationRequest{
		Destination: "Lisbon",
		Datetime:    time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	calls := session.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/client/recommendations/", calls[0].path)
	req, ok := calls[0].opts.Body.(model.RecommendationRequest)
	require.True(t, ok)
	assert.Equal(t, model.DefaultOccasion, req.Occasion)
}

func TestRecommendRejectsMissingDestination(t *testing.T) {
	session := &fakeSession{role: auth.RoleClient}
	svc := newRecommendationService(t, session)

	_, err := svc.Recommend(context.Background(), model.RecommendationRequest{
		Datetime: time.Now(),
	})
	require.Error(t, err)
	assert.Empty(t, session.recorded())
}

func TestRecommendOutfitsHydratesAndSkipsMissingItems(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			switch path {
			case "/client/recommendations/":
				respond(t, out, `{"recommendations": [
					{"name": "Evening", "description": "Dinner look", "product_ids": [1, 2, 3]}
				]}`)
			case "/client/wardrobe/2/":
				return api.NewHTTPError(http.StatusNotFound, nil)
			default:
				respond(t, out, `{"id": "x", "title": "kept"}`)
			}
			return nil
		},
	}
	svc := newRecommendationService(t, session)

	outfits, err := svc.RecommendOutfits(context.Background(), model.RecommendationRequest{
		Destination: "Lisbon",
		Datetime:    time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, []int64{1, 2, 3}, outfits[0].ProductIDs, "references stay intact")
	assert.Len(t, outfits[0].Items, 2, "the deleted garment is dropped, not fatal")

	var paths []string
	for _, call := range session.recorded()[1:] {
		paths = append(paths, call.path)
	}
	sort.Strings(paths)
	assert.Equal(t, []string{"/client/wardrobe/1/", "/client/wardrobe/2/", "/client/wardrobe/3/"}, paths)
}

func TestRecommendOutfitsPropagatesLookupFailure(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			if path == "/client/recommendations/" {
				respond(t, out, `{"recommendations": [
					{"name": "Evening", "product_ids": [1]}
				]}`)
				return nil
			}
			return api.NewHTTPError(http.StatusInternalServerError, nil)
		},
	}
	svc := newRecommendationService(t, session)

	_, err := svc.RecommendOutfits(context.Background(), model.RecommendationRequest{
		Destination: "Lisbon",
		Datetime:    time.Now(),
	})
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusInternalServerError))
}

func TestStylistList(t *testing.T) {
	session := &fakeSession{
		role: auth.RoleClient,
		handler: func(path string, opts api.RequestOptions, out any) error {
			respond(t, out, `[{"id": "s1", "user": {"username": "vera"}, "city": "Paris"}]`)
			return nil
		},
	}
	svc, err := NewStylistService(StylistServiceOptions{Session: session})
	require.NoError(t, err)

	stylists, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stylists, 1)
	assert.Equal(t, "vera", stylists[0].User.Username)

	calls := session.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/client/stylists/", calls[0].path)
}

func TestChangePasswordUsesRoleScopedPath(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleClient, auth.RoleStylist} {
		t.Run(string(role), func(t *testing.T) {
			session := &fakeSession{role: role}
			svc, err := NewAccountService(AccountServiceOptions{Session: session})
			require.NoError(t, err)

			require.NoError(t, svc.ChangePassword(context.Background(), "old-secret", "new-secret"))

			calls := session.recorded()
			require.Len(t, calls, 1)
			assert.Equal(t, "/"+string(role)+"/auth/change-password/", calls[0].path)
			assert.Equal(t, http.MethodPost, calls[0].opts.Method)

			body, ok := calls[0].opts.Body.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, "old-secret", body["old_password"])
			assert.Equal(t, "new-secret", body["new_password"])
		})
	}
}

func TestChangePasswordRequiresSessionRole(t *testing.T) {
	session := &fakeSession{}
	svc, err := NewAccountService(AccountServiceOptions{Session: session})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), "old", "new")
	require.Error(t, err)
	assert.True(t, api.IsNotAuthenticated(err))
	assert.Empty(t, session.recorded())
}

func strPtr(s string) *string { return &s }
