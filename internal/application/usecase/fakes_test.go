package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	cartdom "straightenup/internal/domain/cart"
	forumdom "straightenup/internal/domain/forum"
	orderdom "straightenup/internal/domain/order"
	productdom "straightenup/internal/domain/product"
	profiledom "straightenup/internal/domain/profile"
	shipaddrdom "straightenup/internal/domain/shippingAddress"
	scdom "straightenup/internal/domain/sitecontent"
	supportdom "straightenup/internal/domain/support"
)

var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(collection string) {
	n.mu.Lock()
	n.events = append(n.events, collection)
	n.mu.Unlock()
}

func (n *recordingNotifier) has(collection string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == collection {
			return true
		}
	}
	return false
}

// --- cart ---

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart
	err   error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.Item(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Items = append([]cartdom.Item(nil), c.Items...)
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

// --- shipping address ---

type fakeAddressRepo struct {
	mu    sync.Mutex
	addrs map[string]shipaddrdom.ShippingAddress
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addrs: map[string]shipaddrdom.ShippingAddress{}}
}

func (r *fakeAddressRepo) GetByID(_ context.Context, id string) (*shipaddrdom.ShippingAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addrs[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAddressRepo) ListByUserID(_ context.Context, userID string) ([]shipaddrdom.ShippingAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shipaddrdom.ShippingAddress
	for _, a := range r.addrs {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAddressRepo) Upsert(_ context.Context, a shipaddrdom.ShippingAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs[a.ID] = a
	return nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.addrs, id)
	return nil
}

// --- order ---

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]orderdom.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, orderdom.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdom.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdom.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Insert(_ context.Context, o orderdom.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, s orderdom.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = s
	r.orders[id] = o
	return nil
}

// --- forum ---

type fakeForumRepo struct {
	mu         sync.Mutex
	categories map[string]forumdom.Category
	topics     map[string]forumdom.Topic
	replies    map[string]forumdom.Reply
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{
		categories: map[string]forumdom.Category{},
		topics:     map[string]forumdom.Topic{},
		replies:    map[string]forumdom.Reply{},
	}
}

func (r *fakeForumRepo) ListCategories(_ context.Context) ([]forumdom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []forumdom.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeForumRepo) UpsertCategory(_ context.Context, c forumdom.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeForumRepo) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *fakeForumRepo) GetTopic(_ context.Context, id string) (*forumdom.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.topics[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeForumRepo) ListTopics(_ context.Context, categoryID string, includeHidden bool) ([]forumdom.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []forumdom.Topic
	for _, t := range r.topics {
		if categoryID != "" && t.CategoryID != categoryID {
			continue
		}
		if !includeHidden && t.Hidden() {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeForumRepo) UpsertTopic(_ context.Context, t forumdom.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[t.ID] = t
	return nil
}

func (r *fakeForumRepo) DeleteTopic(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.topics, id)
	return nil
}

func (r *fakeForumRepo) GetReply(_ context.Context, id string) (*forumdom.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rp, ok := r.replies[id]
	if !ok {
		return nil, nil
	}
	return &rp, nil
}

func (r *fakeForumRepo) ListReplies(_ context.Context, topicID string, includeHidden bool) ([]forumdom.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []forumdom.Reply
	for _, rp := range r.replies {
		if rp.TopicID != topicID {
			continue
		}
		if !includeHidden && rp.Hidden() {
			continue
		}
		out = append(out, rp)
	}
	return out, nil
}

func (r *fakeForumRepo) UpsertReply(_ context.Context, rp forumdom.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies[rp.ID] = rp
	return nil
}

func (r *fakeForumRepo) DeleteReply(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.replies, id)
	return nil
}

// --- support ---

type fakeSupportRepo struct {
	mu       sync.Mutex
	tickets  map[string]supportdom.Ticket
	messages map[string][]supportdom.Message
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{
		tickets:  map[string]supportdom.Ticket{},
		messages: map[string][]supportdom.Message{},
	}
}

func (r *fakeSupportRepo) GetTicket(_ context.Context, id string) (*supportdom.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeSupportRepo) ListTicketsByUserID(_ context.Context, userID string) ([]supportdom.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []supportdom.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) ListTickets(_ context.Context) ([]supportdom.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []supportdom.Ticket
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeSupportRepo) UpsertTicket(_ context.Context, t supportdom.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeSupportRepo) ListMessages(_ context.Context, ticketID string) ([]supportdom.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]supportdom.Message(nil), r.messages[ticketID]...), nil
}

func (r *fakeSupportRepo) InsertMessage(_ context.Context, m supportdom.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.TicketID] = append(r.messages[m.TicketID], m)
	return nil
}

// --- profile ---

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]profiledom.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]profiledom.Profile{}}
}

func (r *fakeProfileRepo) GetByID(_ context.Context, uid string) (*profiledom.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]profiledom.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []profiledom.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p profiledom.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, uid)
	return nil
}

// --- auth ports ---

type fakeUserCreator struct {
	users map[string]string // email -> uid
	err   error
}

func (f *fakeUserCreator) CreateUser(_ context.Context, email, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, ok := f.users[email]; ok {
		return "", errors.New("EMAIL_EXISTS: already registered")
	}
	uid := "uid-" + email
	f.users[email] = uid
	return uid, nil
}

type fakePasswordSignIn struct {
	creds map[string]string // email -> password
	err   error
}

func (f *fakePasswordSignIn) SignIn(_ context.Context, email, password string) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	pw, ok := f.creds[email]
	if !ok || pw != password {
		return "", "", "", errors.New("INVALID_LOGIN_CREDENTIALS")
	}
	return "uid-" + email, "idtok-" + email, "rtok-" + email, nil
}

// --- misc ports ---

type fakeAuthorizer struct {
	err   error
	calls int
}

func (f *fakeAuthorizer) Authorize(_ context.Context, _ string, _ int64) error {
	f.calls++
	return f.err
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient emails
	err  error
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, toEmail string, _ orderdom.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

type fakeCatalog struct {
	products map[string]productdom.Product
}

func newFakeCatalog(products ...productdom.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[string]productdom.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*productdom.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

type fakeSiteContentRepo struct {
	mu      sync.Mutex
	contact *scdom.ContactInfo
	offices map[string]scdom.OfficeLocation
}

func newFakeSiteContentRepo() *fakeSiteContentRepo {
	return &fakeSiteContentRepo{offices: map[string]scdom.OfficeLocation{}}
}

func (r *fakeSiteContentRepo) GetContactInfo(_ context.Context) (*scdom.ContactInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contact == nil {
		return nil, nil
	}
	c := *r.contact
	return &c, nil
}

func (r *fakeSiteContentRepo) SaveContactInfo(_ context.Context, c scdom.ContactInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contact = &c
	return nil
}

func (r *fakeSiteContentRepo) ListOfficeLocations(_ context.Context) ([]scdom.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []scdom.OfficeLocation
	for _, o := range r.offices {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSiteContentRepo) UpsertOfficeLocation(_ context.Context, o scdom.OfficeLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offices[o.ID] = o
	return nil
}

func (r *fakeSiteContentRepo) DeleteOfficeLocation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offices[id]; !ok {
		return scdom.ErrNotFound
	}
	delete(r.offices, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]productdom.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]productdom.Product{}}
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, productdom.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) List(_ context.Context, f productdom.Filter) ([]productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []productdom.Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Insert(_ context.Context, p productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return productdom.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeImageStore struct {
	mu    sync.Mutex
	saved map[string][]byte // productID -> data
	err   error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: map[string][]byte{}}
}

func (f *fakeImageStore) Save(_ context.Context, productID, filename, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.saved[productID] = data
	return "https://img.test/" + productID + "/" + filename, nil
}

type fakeRateSource struct {
	rates map[string]float64
	err   error
}

func (f *fakeRateSource) FetchRates(_ context.Context) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}
