package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/auth/provider"
	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func claimFor(email string, groups ...string) *domain.Claim {
	return &domain.Claim{Subject: "sub-" + email, Email: email, Username: email, Groups: groups}
}

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	seq       int
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	createErr error
	creates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User), byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(email string, role domain.UserRole) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u := &domain.User{
		ID:        fmt.Sprintf("user-%d", r.seq),
		Name:      email,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return u
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	r.creates++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

type stubEventRepo struct {
	seq  int
	byID map[string]*domain.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) seed(createdBy string) *domain.Event {
	r.seq++
	e := &domain.Event{
		ID:          fmt.Sprintf("event-%d", r.seq),
		Title:       "Tech Talk",
		Venue:       "Auditorium",
		DateTime:    time.Now().UTC().AddDate(0, 0, 7),
		Capacity:    100,
		CreatedByID: createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	r.byID[e.ID] = e
	return e
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.seq++
	clone := *e
	clone.ID = fmt.Sprintf("event-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) List(_ context.Context, offset, limit int) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if _, ok := r.byID[e.ID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubRegistrationRepo struct {
	seq       int
	byID      map[string]*domain.Registration
	byPair    map[string]*domain.Registration
	createErr error
	qrErr     error
}

func newStubRegistrationRepo() *stubRegistrationRepo {
	return &stubRegistrationRepo{
		byID:   make(map[string]*domain.Registration),
		byPair: make(map[string]*domain.Registration),
	}
}

func pairKey(eventID, userID string) string { return eventID + "/" + userID }

func (r *stubRegistrationRepo) seed(eventID, userID string) *domain.Registration {
	r.seq++
	reg := &domain.Registration{
		ID:            fmt.Sprintf("reg-%d", r.seq),
		EventID:       eventID,
		UserID:        userID,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	r.byID[reg.ID] = reg
	r.byPair[pairKey(eventID, userID)] = reg
	return reg
}

func (r *stubRegistrationRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byPair[pairKey(reg.EventID, reg.UserID)]; ok {
		return nil, domain.ErrAlreadyRegistered
	}
	r.seq++
	clone := *reg
	clone.ID = fmt.Sprintf("reg-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.byPair[pairKey(clone.EventID, clone.UserID)] = &clone
	out := clone
	return &out, nil
}

func (r *stubRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	clone := *reg
	return &clone, nil
}

func (r *stubRegistrationRepo) GetByEventAndUser(_ context.Context, eventID, userID string) (*domain.Registration, error) {
	reg, ok := r.byPair[pairKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	clone := *reg
	return &clone, nil
}

func (r *stubRegistrationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, reg := range r.byID {
		if reg.UserID == userID {
			clone := *reg
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRegistrationRepo) ListByEvent(_ context.Context, eventID string, offset, limit int) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, reg := range r.byID {
		if reg.EventID == eventID {
			clone := *reg
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRegistrationRepo) Update(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	if _, ok := r.byID[reg.ID]; !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	clone := *reg
	r.byID[clone.ID] = &clone
	r.byPair[pairKey(clone.EventID, clone.UserID)] = &clone
	out := clone
	return &out, nil
}

func (r *stubRegistrationRepo) SetQRCodeURL(_ context.Context, id, url string) error {
	if r.qrErr != nil {
		return r.qrErr
	}
	reg, ok := r.byID[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	reg.QRCodeURL = url
	return nil
}

type stubBlogRepo struct {
	seq  int
	byID map[string]*domain.BlogPost
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{byID: make(map[string]*domain.BlogPost)}
}

func (r *stubBlogRepo) seed(authorID string) *domain.BlogPost {
	r.seq++
	p := &domain.BlogPost{
		ID:       fmt.Sprintf("post-%d", r.seq),
		Title:    "Recap",
		Content:  "It happened.",
		AuthorID: authorID,
	}
	r.byID[p.ID] = p
	return p
}

func (r *stubBlogRepo) Create(_ context.Context, p *domain.BlogPost) (*domain.BlogPost, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("post-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBlogRepo) GetByID(_ context.Context, id string) (*domain.BlogPost, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubBlogRepo) List(_ context.Context, offset, limit int) ([]*domain.BlogPost, error) {
	var out []*domain.BlogPost
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, p *domain.BlogPost) (*domain.BlogPost, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubGalleryRepo struct {
	seq  int
	byID map[string]*domain.GalleryItem
}

func newStubGalleryRepo() *stubGalleryRepo {
	return &stubGalleryRepo{byID: make(map[string]*domain.GalleryItem)}
}

func (r *stubGalleryRepo) seed(uploaderID string) *domain.GalleryItem {
	r.seq++
	g := &domain.GalleryItem{
		ID:           fmt.Sprintf("img-%d", r.seq),
		ImageURL:     "https://blobs.test/gallery/x.png",
		UploadedByID: uploaderID,
	}
	r.byID[g.ID] = g
	return g
}

func (r *stubGalleryRepo) Create(_ context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	r.seq++
	clone := *g
	clone.ID = fmt.Sprintf("img-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGalleryRepo) GetByID(_ context.Context, id string) (*domain.GalleryItem, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGalleryRepo) List(_ context.Context, offset, limit int) ([]*domain.GalleryItem, error) {
	var out []*domain.GalleryItem
	for _, g := range r.byID {
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubGalleryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type blobUpload struct {
	bucket      string
	key         string
	contentType string
	size        int
}

type stubBlobStore struct {
	uploads []blobUpload
	deletes []string
	failErr error
}

func (b *stubBlobStore) Upload(_ context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if b.failErr != nil {
		return "", b.failErr
	}
	b.uploads = append(b.uploads, blobUpload{bucket: bucket, key: key, contentType: contentType, size: len(data)})
	return "https://blobs.test/" + bucket + "/" + key, nil
}

func (b *stubBlobStore) PresignDownload(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if b.failErr != nil {
		return "", b.failErr
	}
	return "https://blobs.test/presigned/" + bucket + "/" + key, nil
}

func (b *stubBlobStore) Delete(_ context.Context, bucket, key string) error {
	if b.failErr != nil {
		return b.failErr
	}
	b.deletes = append(b.deletes, bucket+"/"+key)
	return nil
}

type stubDispatcher struct {
	jobs []ports.ArtifactJob
}

func (d *stubDispatcher) Enqueue(job ports.ArtifactJob) { d.jobs = append(d.jobs, job) }

type stubIdentityAdmin struct {
	ensured    []string
	started    []string
	confirmed  map[string]string
	tokens     *ports.TokenBundle
	ensureErr  error
	issueErr   error
	startErr   error
	confirmErr error
}

func newStubIdentityAdmin() *stubIdentityAdmin {
	return &stubIdentityAdmin{
		confirmed: make(map[string]string),
		tokens:    &ports.TokenBundle{AccessToken: "access", IDToken: "id", TokenType: "Bearer", ExpiresIn: 3600},
	}
}

func (a *stubIdentityAdmin) EnsureUser(_ context.Context, email, name string) error {
	if a.ensureErr != nil {
		return a.ensureErr
	}
	a.ensured = append(a.ensured, email)
	return nil
}

func (a *stubIdentityAdmin) IssueTokens(_ context.Context, email string) (*ports.TokenBundle, error) {
	if a.issueErr != nil {
		return nil, a.issueErr
	}
	return a.tokens, nil
}

func (a *stubIdentityAdmin) StartVerification(_ context.Context, destination string) error {
	if a.startErr != nil {
		return a.startErr
	}
	a.started = append(a.started, destination)
	return nil
}

func (a *stubIdentityAdmin) ConfirmVerification(_ context.Context, destination, code string) error {
	if a.confirmErr != nil {
		return a.confirmErr
	}
	a.confirmed[destination] = code
	return nil
}

type stubStateStore struct {
	issued      map[string]string
	validateErr error
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{issued: make(map[string]string)}
}

func (s *stubStateStore) Issue(_ context.Context, providerName string, _ time.Duration) (string, error) {
	state := "state-" + providerName
	s.issued[providerName] = state
	return state, nil
}

func (s *stubStateStore) Validate(_ context.Context, providerName, state string) error {
	if s.validateErr != nil {
		return s.validateErr
	}
	if s.issued[providerName] != state {
		return domain.ErrInvalidState
	}
	delete(s.issued, providerName)
	return nil
}

type fakeProvider struct {
	name        string
	identity    *provider.Identity
	exchangeErr error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://login.test/" + p.name + "/authorize?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*provider.Identity, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.identity, nil
}
