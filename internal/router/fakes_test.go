package router

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

// In-memory repository fakes backing the route tests. Each one implements
// the same conflict policies as the mongo adapters.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return "", repository.ErrDuplicate
		}
	}
	f.seq++
	id := fmt.Sprintf("user%d", f.seq)
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeListingRepo struct {
	mu       sync.Mutex
	seq      int
	listings map[string]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entity.Listing)}
}

func (f *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("listing%d", f.seq)
	stored := *listing
	stored.ID = id
	f.listings[id] = &stored
	return id, nil
}

func (f *fakeListingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeListingRepo) List(_ context.Context) ([]*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		copied := *l
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeListingRepo) IncrementLikes(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	l.Likes++
	return l.Likes, nil
}

func (f *fakeListingRepo) IncrementImpressions(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	l.Impressions++
	return l.Impressions, nil
}

func (f *fakeListingRepo) AddImageURL(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.ImageURLs = append(l.ImageURLs, url)
	return nil
}

type fakeCategoryRepo struct {
	mu              sync.Mutex
	seq             int
	categories      map[string]*entity.Category
	subcategories   map[string]*entity.Subcategory
	specializations map[string]*entity.Specialization
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:      make(map[string]*entity.Category),
		subcategories:   make(map[string]*entity.Subcategory),
		specializations: make(map[string]*entity.Specialization),
	}
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, c *entity.Category) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return "", repository.ErrDuplicate
		}
	}
	f.seq++
	id := fmt.Sprintf("cat%d", f.seq)
	stored := *c
	stored.ID = id
	f.categories[id] = &stored
	return id, nil
}

func (f *fakeCategoryRepo) GetCategoryByID(_ context.Context, id string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeCategoryRepo) CreateSubcategory(_ context.Context, s *entity.Subcategory) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("sub%d", f.seq)
	stored := *s
	stored.ID = id
	f.subcategories[id] = &stored
	return id, nil
}

func (f *fakeCategoryRepo) GetSubcategoryByID(_ context.Context, id string) (*entity.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subcategories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCategoryRepo) ListSubcategories(_ context.Context) ([]*entity.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Subcategory, 0, len(f.subcategories))
	for _, s := range f.subcategories {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeCategoryRepo) CreateSpecialization(_ context.Context, s *entity.Specialization) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("spec%d", f.seq)
	stored := *s
	stored.ID = id
	f.specializations[id] = &stored
	return id, nil
}

func (f *fakeCategoryRepo) GetSpecializationByID(_ context.Context, id string) (*entity.Specialization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.specializations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCategoryRepo) ListSpecializations(_ context.Context) ([]*entity.Specialization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Specialization, 0, len(f.specializations))
	for _, s := range f.specializations {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("comment%d", f.seq)
	stored := *comment
	stored.ID = id
	f.comments[id] = &stored
	return id, nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) GetByListingID(_ context.Context, listingID string) ([]*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ListingID == listingID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeCommentRepo) React(_ context.Context, id string, reaction repository.CommentReaction) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if reaction == repository.ReactionLike {
		c.Likes++
	} else {
		c.Dislikes++
	}
	copied := *c
	return &copied, nil
}

type fakeInteractionRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*entity.Interaction
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{records: make(map[string]*entity.Interaction)}
}

func interactionKey(kind entity.InteractionKind, listingID, userID string) string {
	return string(kind) + "/" + listingID + "/" + userID
}

func (f *fakeInteractionRepo) UpsertAvailability(_ context.Context, listingID, userID string) (*entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := &entity.Interaction{
		Kind:        entity.KindAvailability,
		ListingID:   listingID,
		UserID:      userID,
		IsAvailable: false,
		UpdatedAt:   time.Now(),
	}
	f.records[interactionKey(entity.KindAvailability, listingID, userID)] = record
	copied := *record
	return &copied, nil
}

func (f *fakeInteractionRepo) CreateReport(_ context.Context, listingID, userID, content string) (*entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := interactionKey(entity.KindAbuseReport, listingID, userID)
	if _, exists := f.records[key]; exists {
		return nil, repository.ErrConflict
	}
	f.seq++
	record := &entity.Interaction{
		ID:            fmt.Sprintf("interaction%d", f.seq),
		Kind:          entity.KindAbuseReport,
		ListingID:     listingID,
		UserID:        userID,
		ReportContent: content,
		ReportStatus:  entity.ReportPending,
		CreatedAt:     time.Now(),
	}
	f.records[key] = record
	copied := *record
	return &copied, nil
}

func (f *fakeInteractionRepo) CreateCallback(_ context.Context, listingID, userID string) (*entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := interactionKey(entity.KindCallbackRequest, listingID, userID)
	if existing, ok := f.records[key]; ok && existing.Active() {
		return nil, repository.ErrConflict
	}
	f.seq++
	record := &entity.Interaction{
		ID:             fmt.Sprintf("interaction%d", f.seq),
		Kind:           entity.KindCallbackRequest,
		ListingID:      listingID,
		UserID:         userID,
		CallbackStatus: entity.CallbackPending,
		CreatedAt:      time.Now(),
	}
	f.records[key] = record
	copied := *record
	return &copied, nil
}

func (f *fakeInteractionRepo) CompleteCallback(_ context.Context, listingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := interactionKey(entity.KindCallbackRequest, listingID, userID)
	record, ok := f.records[key]
	if !ok || !record.Active() {
		return repository.ErrNotFound
	}
	record.CallbackStatus = entity.CallbackCompleted
	return nil
}

func (f *fakeInteractionRepo) FindActive(_ context.Context, kind entity.InteractionKind, listingID, userID string) (*entity.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[interactionKey(kind, listingID, userID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if kind != entity.KindAvailability && !record.Active() {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	seq      int
	messages []*entity.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (f *fakeChatRepo) Create(_ context.Context, msg *entity.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("msg%d", f.seq)
	stored := *msg
	stored.ID = id
	f.messages = append(f.messages, &stored)
	return id, nil
}

func (f *fakeChatRepo) GetByListingForUser(_ context.Context, listingID, userID string) ([]*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range f.messages {
		if m.ListingID == listingID && (m.SenderID == userID || m.ReceiverID == userID) {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChatRepo) MarkReceivedRead(_ context.Context, listingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ListingID == listingID && m.ReceiverID == userID {
			m.IsRead = true
		}
	}
	return nil
}
