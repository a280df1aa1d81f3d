package swipe

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairKey struct {
	swiper uuid.UUID
	swiped uuid.UUID
}

type stubSwipeRepo struct {
	swipes map[pairKey]*domain.Swipe
	nextID int64
}

func newStubSwipeRepo() *stubSwipeRepo {
	return &stubSwipeRepo{swipes: make(map[pairKey]*domain.Swipe)}
}

func (s *stubSwipeRepo) Create(ctx context.Context, swipe *domain.Swipe) error {
	key := pairKey{swipe.SwiperID, swipe.SwipedID}
	if _, exists := s.swipes[key]; exists {
		return domain.ErrSwipeAlreadyExists
	}
	s.nextID++
	swipe.ID = s.nextID
	s.swipes[key] = swipe
	return nil
}

func (s *stubSwipeRepo) GetByUsers(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error) {
	swipe, ok := s.swipes[pairKey{swiperID, swipedID}]
	if !ok {
		return nil, domain.ErrSwipeNotFound
	}
	return swipe, nil
}

func (s *stubSwipeRepo) ListSwipedIDs(ctx context.Context, swiperID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range s.swipes {
		if key.swiper == swiperID {
			ids = append(ids, key.swiped)
		}
	}
	return ids, nil
}

type stubMatchRepo struct {
	matches map[pairKey]*domain.Match
	nextID  int64
}

func newStubMatchRepo() *stubMatchRepo {
	return &stubMatchRepo{matches: make(map[pairKey]*domain.Match)}
}

func (s *stubMatchRepo) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	match.UserA, match.UserB = domain.OrderPair(match.UserA, match.UserB)
	key := pairKey{match.UserA, match.UserB}
	if existing, ok := s.matches[key]; ok {
		match.ID = existing.ID
		return false, nil
	}
	s.nextID++
	match.ID = s.nextID
	s.matches[key] = match
	return true, nil
}

func (s *stubMatchRepo) GetByUsers(ctx context.Context, userA, userB uuid.UUID) (*domain.Match, error) {
	userA, userB = domain.OrderPair(userA, userB)
	match, ok := s.matches[pairKey{userA, userB}]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

func (s *stubMatchRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	for _, m := range s.matches {
		if m.HasUser(userID) {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID > matches[j].ID })
	return matches, nil
}

type stubProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func newStubProfileRepo(profiles ...*domain.Profile) *stubProfileRepo {
	repo := &stubProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (s *stubProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	s.profiles[profile.ID] = profile
	return nil
}

func (s *stubProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubProfileRepo) ListComplete(ctx context.Context, exclude []uuid.UUID, limit, offset int) ([]*domain.Profile, error) {
	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var all []*domain.Profile
	for _, p := range s.profiles {
		if p.IsComplete() && !excluded[p.ID] {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *stubProfileRepo) UpdatePheromoneAnalysis(ctx context.Context, id uuid.UUID, analysis string) error {
	profile, ok := s.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.PheromoneAnalysis = &analysis
	return nil
}

type stubUserRepo struct {
	emails     map[uuid.UUID]string
	lookupErrs map[uuid.UUID]error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		emails:     make(map[uuid.UUID]string),
		lookupErrs: make(map[uuid.UUID]error),
	}
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	email, ok := s.emails[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: id, Email: email}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for id, e := range s.emails {
		if e == email {
			return &domain.User{ID: id, Email: e}, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetEmailByID(ctx context.Context, id uuid.UUID) (string, error) {
	if err, ok := s.lookupErrs[id]; ok {
		return "", err
	}
	email, ok := s.emails[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return email, nil
}

type sentEmail struct {
	to      string
	name    string
	matched string
}

type stubNotifier struct {
	sent    []sentEmail
	failFor map[string]error
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{failFor: make(map[string]error)}
}

func (s *stubNotifier) SendMatchNotification(ctx context.Context, recipientEmail, recipientName, matchedName string) error {
	if err, ok := s.failFor[recipientEmail]; ok {
		return err
	}
	s.sent = append(s.sent, sentEmail{to: recipientEmail, name: recipientName, matched: matchedName})
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completeProfile(name string, gender domain.Gender, prefs ...domain.Gender) *domain.Profile {
	age := 25
	g := gender
	return &domain.Profile{
		ID:               uuid.New(),
		FullName:         name,
		Age:              &age,
		Gender:           &g,
		DatingPreference: prefs,
	}
}

type fixture struct {
	uc       *SwipeUseCase
	swipes   *stubSwipeRepo
	matches  *stubMatchRepo
	profiles *stubProfileRepo
	users    *stubUserRepo
	notifier *stubNotifier
}

func newFixture(profiles ...*domain.Profile) *fixture {
	f := &fixture{
		swipes:   newStubSwipeRepo(),
		matches:  newStubMatchRepo(),
		profiles: newStubProfileRepo(profiles...),
		users:    newStubUserRepo(),
		notifier: newStubNotifier(),
	}
	for _, p := range profiles {
		f.users.emails[p.ID] = p.FullName + "@example.com"
	}
	f.uc = NewSwipeUseCase(f.swipes, f.matches, f.profiles, f.users, f.notifier, testLogger())
	return f
}

func TestRecordSwipe_MutualLike(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	first, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)
	assert.False(t, first.Matched)
	assert.Nil(t, first.MatchedProfile)
	assert.Empty(t, f.notifier.sent)

	second, err := f.uc.RecordSwipe(ctx, bob.ID, &SwipeRequest{SwipedID: alice.ID, Liked: true})
	require.NoError(t, err)
	assert.True(t, second.Matched)
	require.NotNil(t, second.MatchedProfile)
	assert.Equal(t, alice.ID, second.MatchedProfile.ID)

	// Both sides are emailed exactly once.
	require.Len(t, f.notifier.sent, 2)
}

func TestRecordSwipe_PassNeverMatches(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, bob.ID, &SwipeRequest{SwipedID: alice.ID, Liked: false})
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Empty(t, f.notifier.sent)
}

func TestRecordSwipe_Duplicate(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)

	_, err = f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	assert.ErrorIs(t, err, domain.ErrSwipeAlreadyExists)

	// The ledger still holds exactly one row for the pair.
	ids, err := f.swipes.ListSwipedIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestRecordSwipe_Self(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	f := newFixture(alice)

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: alice.ID, Liked: true})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordSwipe_UnknownProfiles(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	f := newFixture(alice)

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: uuid.New(), Liked: true})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.uc.RecordSwipe(ctx, uuid.New(), &SwipeRequest{SwipedID: alice.ID, Liked: true})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRecordSwipe_NotificationPartialFailure(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	// Bob's email lookup fails; the match must still go through and
	// Alice still gets her email.
	f.users.lookupErrs[bob.ID] = domain.ErrCollaboratorDown

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, bob.ID, &SwipeRequest{SwipedID: alice.ID, Liked: true})
	require.NoError(t, err)
	assert.True(t, resp.Matched)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Alice@example.com", f.notifier.sent[0].to)
	assert.Equal(t, "Bob", f.notifier.sent[0].matched)
}

func TestRecordSwipe_SendFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	f.notifier.failFor["Alice@example.com"] = domain.ErrCollaboratorDown

	_, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, bob.ID, &SwipeRequest{SwipedID: alice.ID, Liked: true})
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Bob@example.com", f.notifier.sent[0].to)
}

func TestRecordSwipe_MatchAlreadyClaimed(t *testing.T) {
	ctx := context.Background()
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	// Simulate the concurrent mutual like: the mirror swipe and the match
	// row are already in place when this call runs its match check.
	require.NoError(t, f.swipes.Create(ctx, &domain.Swipe{SwiperID: bob.ID, SwipedID: alice.ID, Liked: true}))
	_, err := f.matches.CreateIfAbsent(ctx, &domain.Match{UserA: alice.ID, UserB: bob.ID})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)
	assert.True(t, resp.Matched)

	// The pair was already claimed, so no second notification wave.
	assert.Empty(t, f.notifier.sent)
}

func TestRecordSwipe_MatchedProfileRevealsHandle(t *testing.T) {
	ctx := context.Background()
	handle := "alice.ig"
	alice := completeProfile("Alice", domain.GenderFemale, domain.GenderMale)
	alice.InstagramHandle = &handle
	bob := completeProfile("Bob", domain.GenderMale, domain.GenderFemale)
	f := newFixture(alice, bob)

	_, err := f.uc.RecordSwipe(ctx, bob.ID, &SwipeRequest{SwipedID: alice.ID, Liked: true})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, alice.ID, &SwipeRequest{SwipedID: bob.ID, Liked: true})
	require.NoError(t, err)
	require.True(t, resp.Matched)
	require.NotNil(t, resp.MatchedProfile)
	assert.Equal(t, bob.ID, resp.MatchedProfile.ID)
}
