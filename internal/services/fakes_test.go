package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mailer"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

// templates

type fakeTemplateRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Template
}

func newFakeTemplateRepo(seed ...*models.Template) *fakeTemplateRepo {
	r := &fakeTemplateRepo{items: map[primitive.ObjectID]*models.Template{}}
	for _, t := range seed {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.items[t.ID] = cloneTemplate(t)
	}
	return r
}

func cloneTemplate(t *models.Template) *models.Template {
	c := *t
	if t.Buttons != nil {
		c.Buttons = append([]models.TemplateButton{}, t.Buttons...)
	}
	return &c
}

func (r *fakeTemplateRepo) conflicts(t *models.Template) bool {
	for id, other := range r.items {
		if id != t.ID && other.WabaID == t.WabaID && other.Name == t.Name {
			return true
		}
	}
	return false
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if r.conflicts(t) {
		return repositories.ErrIdentityConflict
	}
	r.items[t.ID] = cloneTemplate(t)
	return nil
}

func (r *fakeTemplateRepo) find(match func(*models.Template) bool) (*models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if match(t) {
			return cloneTemplate(t), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, userID, id primitive.ObjectID) (*models.Template, error) {
	return r.find(func(t *models.Template) bool { return t.ID == id && t.UserID == userID })
}

func (r *fakeTemplateRepo) FindByExternalID(_ context.Context, userID primitive.ObjectID, externalID string) (*models.Template, error) {
	return r.find(func(t *models.Template) bool { return t.ExternalTemplateID == externalID && t.UserID == userID })
}

func (r *fakeTemplateRepo) FindByName(_ context.Context, userID primitive.ObjectID, wabaID, name string) (*models.Template, error) {
	return r.find(func(t *models.Template) bool { return t.Name == name && t.WabaID == wabaID && t.UserID == userID })
}

func (r *fakeTemplateRepo) FindAll(_ context.Context, filter models.TemplateFilter) ([]*models.Template, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Template
	for _, t := range r.items {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, cloneTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t *models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[t.ID]
	if !ok || existing.UserID != t.UserID {
		return repositories.ErrNotFound
	}
	if r.conflicts(t) {
		return repositories.ErrIdentityConflict
	}
	r.items[t.ID] = cloneTemplate(t)
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTemplateRepo) CountBy(_ context.Context, userID primitive.ObjectID, field string, from, to time.Time) ([]models.GroupCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, t := range r.items {
		if t.UserID != userID {
			continue
		}
		if !from.IsZero() && t.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && t.CreatedAt.After(to) {
			continue
		}
		key := string(t.Status)
		if field == "category" {
			key = string(t.Category)
		}
		counts[key]++
	}
	var out []models.GroupCount
	for k, n := range counts {
		out = append(out, models.GroupCount{Key: k, Count: n})
	}
	return out, nil
}

func (r *fakeTemplateRepo) all() []*models.Template {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Template, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, cloneTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeTemplateRepo) get(id primitive.ObjectID) *models.Template {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.items[id]; ok {
		return cloneTemplate(t)
	}
	return nil
}

// platform

type fakePlatform struct {
	submitID  string
	submitErr error
	submitted []string

	removeErr error
	removed   []string

	remote    []whatsapp.RemoteTemplate
	listErr   error
	listCalls int
}

func (p *fakePlatform) Submit(_ context.Context, t *models.Template, _ whatsapp.Credentials) (string, error) {
	p.submitted = append(p.submitted, t.Name)
	if p.submitErr != nil {
		return "", p.submitErr
	}
	return p.submitID, nil
}

func (p *fakePlatform) Remove(_ context.Context, name string, _ whatsapp.Credentials) error {
	p.removed = append(p.removed, name)
	return p.removeErr
}

func (p *fakePlatform) ListAll(_ context.Context, _ whatsapp.Credentials, _ int) ([]whatsapp.RemoteTemplate, error) {
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.remote, nil
}

type staticCredentials struct {
	creds whatsapp.Credentials
	err   error
}

func (s staticCredentials) Resolve(context.Context, primitive.ObjectID) (whatsapp.Credentials, error) {
	return s.creds, s.err
}

// businesses

type fakeBusinessRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Business
	saves int
}

func newFakeBusinessRepo(seed ...*models.Business) *fakeBusinessRepo {
	r := &fakeBusinessRepo{items: map[primitive.ObjectID]*models.Business{}}
	for _, b := range seed {
		c := *b
		r.items[b.UserID] = &c
	}
	return r
}

func (r *fakeBusinessRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *fakeBusinessRepo) Save(_ context.Context, b *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	c := *b
	r.items[b.UserID] = &c
	return nil
}

func (r *fakeBusinessRepo) FindActive(context.Context) ([]*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Business
	for _, b := range r.items {
		if b.Status == models.BusinessStatusActive && b.SignupCompleted {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

// users

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(seed ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[primitive.ObjectID]*models.User{}}
	for _, u := range seed {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		c := *u
		r.items[u.ID] = &c
	}
	return r
}

func (r *fakeUserRepo) emailTaken(u *models.User) bool {
	for id, other := range r.items {
		if id != u.ID && other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if r.emailTaken(u) {
		return repositories.ErrIdentityConflict
	}
	c := *u
	r.items[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return repositories.ErrNotFound
	}
	if r.emailTaken(u) {
		return repositories.ErrIdentityConflict
	}
	c := *u
	r.items[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, filter models.UserFilter) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.items {
		if (filter.Role == "" || u.Role == filter.Role) && (filter.Status == "" || u.Status == filter.Status) {
			c := *u
			out = append(out, &c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Count(ctx context.Context, role, status string) (int64, error) {
	_, n, err := r.FindAll(ctx, models.UserFilter{Role: role, Status: status})
	return n, err
}

func (r *fakeUserRepo) CountCreatedByMonth(_ context.Context, role string, since time.Time) ([]models.MonthBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[[2]int]int64{}
	for _, u := range r.items {
		if u.Role == role && !u.CreatedAt.Before(since) {
			counts[[2]int{u.CreatedAt.Year(), int(u.CreatedAt.Month())}]++
		}
	}
	var out []models.MonthBucket
	for k, n := range counts {
		out = append(out, models.MonthBucket{Year: k[0], Month: k[1], Count: n})
	}
	return out, nil
}

// contacts

type fakeContactRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{items: map[primitive.ObjectID]*models.Contact{}}
}

func (r *fakeContactRepo) duplicate(c *models.Contact) bool {
	for id, other := range r.items {
		if id != c.ID && other.VendorID == c.VendorID && other.CountryCode == c.CountryCode && other.PhoneNumber == c.PhoneNumber {
			return true
		}
	}
	return false
}

func (r *fakeContactRepo) Create(_ context.Context, c *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if r.duplicate(c) {
		return repositories.ErrIdentityConflict
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeContactRepo) FindByID(_ context.Context, vendorID, id primitive.ObjectID) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.VendorID != vendorID {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContactRepo) FindAll(_ context.Context, filter models.ContactFilter) ([]*models.Contact, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Contact
	for _, c := range r.items {
		if c.VendorID == filter.VendorID && (filter.Category == "" || c.Category == filter.Category) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) Update(_ context.Context, c *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[c.ID]; !ok || existing.VendorID != c.VendorID {
		return repositories.ErrNotFound
	}
	if r.duplicate(c) {
		return repositories.ErrIdentityConflict
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, vendorID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.VendorID != vendorID {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeContactRepo) Count(_ context.Context, vendorID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.items {
		if vendorID.IsZero() || c.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}

// campaigns

type fakeCampaignRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo(seed ...*models.Campaign) *fakeCampaignRepo {
	r := &fakeCampaignRepo{items: map[primitive.ObjectID]*models.Campaign{}}
	for _, c := range seed {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		cp := *c
		r.items[c.ID] = &cp
	}
	return r
}

func (r *fakeCampaignRepo) Create(_ context.Context, c *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, vendorID, id primitive.ObjectID) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.VendorID != vendorID {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCampaignRepo) FindAll(_ context.Context, vendorID primitive.ObjectID, _, _ int) ([]*models.Campaign, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Campaign
	for _, c := range r.items {
		if c.VendorID == vendorID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCampaignRepo) Update(_ context.Context, c *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[c.ID]; !ok || existing.VendorID != c.VendorID {
		return repositories.ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCampaignRepo) Delete(_ context.Context, vendorID, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.VendorID != vendorID {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCampaignRepo) CountByStatus(_ context.Context, vendorID primitive.ObjectID) ([]models.GroupCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range r.items {
		if vendorID.IsZero() || c.VendorID == vendorID {
			counts[c.Status]++
		}
	}
	var out []models.GroupCount
	for k, n := range counts {
		out = append(out, models.GroupCount{Key: k, Count: n})
	}
	return out, nil
}

// messages

type fakeMessageRepo struct {
	counts []models.GroupCount
}

func (r fakeMessageRepo) CountByStatus(context.Context) ([]models.GroupCount, error) {
	return r.counts, nil
}

// subscription plans

type fakePlanRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.SubscriptionPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{items: map[primitive.ObjectID]*models.SubscriptionPlan{}}
}

func (r *fakePlanRepo) Create(_ context.Context, p *models.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePlanRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) FindAll(_ context.Context, activeOnly bool) ([]*models.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SubscriptionPlan
	for _, p := range r.items {
		if !activeOnly || p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *models.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakePlanRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

// system configs

type fakeConfigRepo struct {
	mu    sync.Mutex
	items map[string]*models.SystemConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{items: map[string]*models.SystemConfig{}}
}

func (r *fakeConfigRepo) FindAll(context.Context) ([]*models.SystemConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SystemConfig
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *fakeConfigRepo) FindPublic(ctx context.Context) ([]*models.SystemConfig, error) {
	all, _ := r.FindAll(ctx)
	var out []*models.SystemConfig
	for _, c := range all {
		if c.IsPublic {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConfigRepo) FindByKey(_ context.Context, key string) (*models.SystemConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConfigRepo) UpsertByKey(_ context.Context, c *models.SystemConfig) (*models.SystemConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	if existing, ok := r.items[c.Key]; ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.ID = primitive.NewObjectID()
	}
	r.items[c.Key] = &cp
	out := cp
	return &out, nil
}

func (r *fakeConfigRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, c := range r.items {
		if c.ID == id {
			delete(r.items, k)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// mail

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

var (
	_ repositories.TemplateRepository         = (*fakeTemplateRepo)(nil)
	_ repositories.BusinessRepository         = (*fakeBusinessRepo)(nil)
	_ repositories.UserRepository             = (*fakeUserRepo)(nil)
	_ repositories.ContactRepository          = (*fakeContactRepo)(nil)
	_ repositories.CampaignRepository         = (*fakeCampaignRepo)(nil)
	_ repositories.MessageRepository          = fakeMessageRepo{}
	_ repositories.SubscriptionPlanRepository = (*fakePlanRepo)(nil)
	_ repositories.SystemConfigRepository     = (*fakeConfigRepo)(nil)
	_ TemplatePlatform                        = (*fakePlatform)(nil)
	_ mailer.Mailer                           = (*recordingMailer)(nil)
)
