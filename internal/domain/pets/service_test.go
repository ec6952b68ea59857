package pets

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	memcache "softpet/internal/adapters/cache/memory"
	"softpet/internal/platform/outcome"
	"softpet/internal/ports/auth"
	"softpet/internal/validation"
	"softpet/internal/views"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	mu     sync.Mutex
	byID   map[int64]Pet
	nextID int64

	failWrites error
	updates    int

	// onList corre después de leer y antes de devolver, sin el lock tomado
	onList func()
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) (Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return Pet{}, r.failWrites
	}
	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = p
	return p, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.updates++
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) (ListPage, error) {
	page := r.list(f)
	if r.onList != nil {
		r.onList()
	}
	return page, nil
}

func (r *testRepo) list(f ListFilter) ListPage {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(f.Query)
	all := make([]Pet, 0)
	for _, p := range r.byID {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.OwnerName), q) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if f.PageSize < end-start {
		end = start + f.PageSize
	}
	return ListPage{Items: all[start:end], Total: len(all)}
}

// testVerifier: "user-<id>" es válido; cualquier otra cosa no.
type testVerifier struct{}

func (testVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	switch token {
	case "user-7":
		return auth.Claims{UserID: 7}, nil
	case "user-8":
		return auth.Claims{UserID: 8}, nil
	}
	return auth.Claims{}, errors.New("invalid token")
}

type countingViews struct {
	mu     sync.Mutex
	events []views.Event
}

func (c *countingViews) Invalidate(_ context.Context, ev views.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func newTestService(repo *testRepo, pageSize int) (*Service, *countingViews) {
	cv := &countingViews{}
	svc := NewService(repo, testVerifier{}, validation.New(), Config{PageSize: pageSize, Views: cv})
	return svc, cv
}

func validPet() validation.Payload {
	return validation.Payload{
		"name":       "Rex",
		"type":       "DOG",
		"breed":      "Labrador",
		"ownerName":  "Ana",
		"ownerPhone": "11999990000",
		"birthDate":  "01/02/2020",
	}
}

func mustCreate(t *testing.T, svc *Service, token string, p validation.Payload) int64 {
	t.Helper()
	res := svc.Create(context.Background(), token, p)
	if !res.Success || res.ID == 0 {
		t.Fatalf("create failed: %#v", res)
	}
	return res.ID
}

// -------------------------
// Create
// -------------------------

func TestService_Create_RequiresSession(t *testing.T) {
	svc, cv := newTestService(newTestRepo(), 0)

	res := svc.Create(context.Background(), "", validPet())
	if res.Success || res.Error != MsgNotAuthenticated || res.Kind != outcome.Unauthenticated {
		t.Fatalf("expected not authenticated, got %#v", res)
	}

	res = svc.Create(context.Background(), "tampered", validPet())
	if res.Error != MsgInvalidSession {
		t.Fatalf("expected invalid session, got %#v", res)
	}
	if len(cv.events) != 0 {
		t.Fatalf("expected no invalidation")
	}
}

func TestService_Create_SetsOwnerFromSession(t *testing.T) {
	repo := newTestRepo()
	svc, cv := newTestService(repo, 0)

	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p := validPet()
	p["ownerUserId"] = "8" // ignorado: el dueño sale de la sesión
	id := mustCreate(t, svc, "user-7", p)

	got, _ := repo.GetByID(context.Background(), id)
	if got.OwnerUserID != 7 || got.Type != TypeDog || got.BirthDate != "01/02/2020" {
		t.Fatalf("unexpected stored pet %#v", got)
	}
	if got.CreatedAt != now || got.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}
	if len(cv.events) != 1 || cv.events[0].Action != views.ActionCreated || cv.events[0].PetID != id {
		t.Fatalf("expected one created invalidation, got %#v", cv.events)
	}
}

func TestService_Create_ReturnsFirstValidationError(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), 0)

	p := validPet()
	p["name"] = "R"
	p["birthDate"] = "2020-02-01"
	res := svc.Create(context.Background(), "user-7", p)
	if res.Error != "name must be at least 2 characters" || res.Kind != outcome.Invalid {
		t.Fatalf("expected name error first, got %#v", res)
	}

	p = validPet()
	p["type"] = "BIRD"
	if res := svc.Create(context.Background(), "user-7", p); res.Error != "select the animal type" {
		t.Fatalf("expected type error, got %#v", res)
	}

	p = validPet()
	p["ownerPhone"] = "12345"
	if res := svc.Create(context.Background(), "user-7", p); res.Error != "invalid phone number" {
		t.Fatalf("expected phone error, got %#v", res)
	}
}

func TestService_Create_StoreFailureIsGeneric(t *testing.T) {
	repo := newTestRepo()
	repo.failWrites = errors.New("pq: relation does not exist")
	svc, cv := newTestService(repo, 0)

	res := svc.Create(context.Background(), "user-7", validPet())
	if res.Success || res.Error != MsgSaveFailed || res.Kind != outcome.Internal {
		t.Fatalf("expected generic save error, got %#v", res)
	}
	if len(cv.events) != 0 {
		t.Fatalf("expected no invalidation on failure")
	}
}

// -------------------------
// Update
// -------------------------

func TestService_Update_OwnerCanEdit(t *testing.T) {
	repo := newTestRepo()
	svc, cv := newTestService(repo, 0)
	id := mustCreate(t, svc, "user-7", validPet())

	p := validPet()
	p["name"] = "Rex II"
	p["type"] = "CAT"
	res := svc.Update(context.Background(), "user-7", "", p.With("id", itoa(id)))
	if !res.Success {
		t.Fatalf("expected success, got %#v", res)
	}

	got, _ := repo.GetByID(context.Background(), id)
	if got.Name != "Rex II" || got.Type != TypeCat || got.OwnerUserID != 7 {
		t.Fatalf("unexpected pet after update %#v", got)
	}
	if len(cv.events) != 2 || cv.events[1].Action != views.ActionUpdated {
		t.Fatalf("expected updated invalidation, got %#v", cv.events)
	}
}

func TestService_Update_ForbiddenForOtherUser(t *testing.T) {
	repo := newTestRepo()
	svc, cv := newTestService(repo, 0)
	id := mustCreate(t, svc, "user-7", validPet())
	before, _ := repo.GetByID(context.Background(), id)

	p := validPet()
	p["name"] = "Stolen"
	res := svc.Update(context.Background(), "user-8", itoa(id), p)
	if res.Success || res.Error != MsgForbidden || res.Kind.HTTPStatus() != 403 {
		t.Fatalf("expected forbidden, got %#v", res)
	}

	after, _ := repo.GetByID(context.Background(), id)
	if after != before || repo.updates != 0 {
		t.Fatalf("pet must not change on forbidden update")
	}
	if len(cv.events) != 1 {
		t.Fatalf("expected no invalidation for forbidden update")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), 0)

	res := svc.Update(context.Background(), "user-7", "999", validPet())
	if res.Error != MsgNotFound || res.Kind.HTTPStatus() != 404 {
		t.Fatalf("expected not found, got %#v", res)
	}
}

func TestService_Update_NonNumericIDIsNotFound(t *testing.T) {
	svc, cv := newTestService(newTestRepo(), 0)

	for _, id := range []string{"abc", "-1", "0", "99999999999999999999"} {
		res := svc.Update(context.Background(), "user-7", id, validPet())
		if res.Error != MsgNotFound || res.Kind.HTTPStatus() != 404 {
			t.Fatalf("id %q: expected not found, got %#v", id, res)
		}
	}
	if len(cv.events) != 0 {
		t.Fatalf("expected no invalidation")
	}
}

func TestService_Update_RequiresID(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), 0)

	res := svc.Update(context.Background(), "user-7", "", validPet())
	if res.Error != "pet id is required" || res.Kind != outcome.Invalid {
		t.Fatalf("expected id required, got %#v", res)
	}
}

func TestService_Update_SessionCheckedFirst(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), 0)

	res := svc.Update(context.Background(), "", "999", validation.Payload{})
	if res.Error != MsgNotAuthenticated {
		t.Fatalf("expected not authenticated before validation, got %#v", res)
	}
}

// -------------------------
// Delete
// -------------------------

func TestService_Delete_Lifecycle(t *testing.T) {
	repo := newTestRepo()
	svc, cv := newTestService(repo, 0)
	id := mustCreate(t, svc, "user-7", validPet())

	if res := svc.Delete(context.Background(), "user-8", itoa(id)); res.Error != MsgForbidden {
		t.Fatalf("expected forbidden, got %#v", res)
	}
	if _, err := repo.GetByID(context.Background(), id); err != nil {
		t.Fatalf("pet must survive forbidden delete")
	}

	if res := svc.Delete(context.Background(), "user-7", itoa(id)); !res.Success {
		t.Fatalf("expected delete ok, got %#v", res)
	}
	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pet gone")
	}
	if last := cv.events[len(cv.events)-1]; last.Action != views.ActionDeleted {
		t.Fatalf("expected deleted invalidation")
	}

	// terminal: un segundo delete es not found
	if res := svc.Delete(context.Background(), "user-7", itoa(id)); res.Error != MsgNotFound {
		t.Fatalf("expected not found after delete, got %#v", res)
	}
}

func TestService_Delete_NonNumericIDIsNotFound(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), 0)

	for _, id := range []string{"", "abc", "-1", "0"} {
		if res := svc.Delete(context.Background(), "user-7", id); res.Error != MsgNotFound {
			t.Fatalf("id %q: expected not found, got %#v", id, res)
		}
	}
}

func TestService_Delete_StoreFailure(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, 0)
	id := mustCreate(t, svc, "user-7", validPet())

	repo.failWrites = errors.New("timeout")
	if res := svc.Delete(context.Background(), "user-7", itoa(id)); res.Error != MsgDeleteFailed {
		t.Fatalf("expected generic delete error, got %#v", res)
	}
}

// -------------------------
// List
// -------------------------

func TestService_List_PaginatesNewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, 2)
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		p := validPet()
		p["name"] = name
		mustCreate(t, svc, "user-7", p)
	}

	first, err := svc.List(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if first.Page != 1 || first.Total != 3 || first.TotalPages != 2 || len(first.Items) != 2 {
		t.Fatalf("unexpected first page %#v", first)
	}
	if first.Items[0].Name != "Charlie" {
		t.Fatalf("expected newest first, got %s", first.Items[0].Name)
	}

	second, _ := svc.List(context.Background(), "", 2)
	if len(second.Items) != 1 || second.Items[0].Name != "Alpha" {
		t.Fatalf("unexpected second page %#v", second)
	}
}

func TestService_List_SearchByNameOrOwner(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, 0)

	a := validPet()
	a["name"], a["ownerName"] = "Mimi", "Bruno"
	b := validPet()
	b["name"], b["ownerName"] = "Toby", "Carla"
	mustCreate(t, svc, "user-7", a)
	mustCreate(t, svc, "user-8", b)

	res, _ := svc.List(context.Background(), "  BRU ", 1)
	if res.Total != 1 || res.Items[0].Name != "Mimi" {
		t.Fatalf("expected owner-name match, got %#v", res)
	}

	empty, _ := svc.List(context.Background(), "zzz", 1)
	if empty.Total != 0 || empty.TotalPages != 1 || empty.Items == nil {
		t.Fatalf("expected empty page with total_pages=1, got %#v", empty)
	}
}

type mapCache struct{ data map[string]ListResult }

func (m *mapCache) Load(_ context.Context, key string, dst any) (int64, bool) {
	v, ok := m.data[key]
	if ok {
		*(dst.(*ListResult)) = v
	}
	return 0, ok
}

func (m *mapCache) Save(_ context.Context, _ int64, key string, v any) { m.data[key] = v.(ListResult) }

func TestService_List_UsesCache(t *testing.T) {
	repo := newTestRepo()
	c := &mapCache{data: map[string]ListResult{}}
	svc := NewService(repo, testVerifier{}, nil, Config{Cache: c})

	mustCreate(t, svc, "user-7", validPet())
	if _, err := svc.List(context.Background(), "", 1); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(c.data) != 1 {
		t.Fatalf("expected page cached")
	}

	// el repo cambia por fuera; la página cacheada se sirve igual
	repo.byID = map[int64]Pet{}
	res, _ := svc.List(context.Background(), "", 1)
	if res.Total != 1 {
		t.Fatalf("expected cached result")
	}
}

func TestService_List_MutationDuringReadIsNotCachedAsFresh(t *testing.T) {
	repo := newTestRepo()
	listing := views.NewListing(memcache.NewStore(), time.Minute, nil)
	svc := NewService(repo, testVerifier{}, nil, Config{Cache: listing, Views: listing})

	// la primera lectura ve el repo vacío; antes de que vuelva, alguien da de alta
	repo.onList = func() {
		repo.onList = nil
		mustCreate(t, svc, "user-7", validPet())
	}
	first, err := svc.List(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if first.Total != 0 {
		t.Fatalf("expected snapshot taken before the create, got %#v", first)
	}

	next, _ := svc.List(context.Background(), "", 1)
	if next.Total != 1 {
		t.Fatalf("stale page served after invalidation: total=%d want 1", next.Total)
	}
}

func TestService_List_HugePageDoesNotOverflow(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, 16)
	mustCreate(t, svc, "user-7", validPet())

	res, err := svc.List(context.Background(), "", 576460752303423489)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Items) != 0 || res.Total != 1 || res.Page != math.MaxInt/16 {
		t.Fatalf("expected empty clamped page, got %#v", res)
	}
}

func TestListFilter_OffsetSaturates(t *testing.T) {
	cases := []struct {
		f    ListFilter
		want int
	}{
		{ListFilter{Page: 0, PageSize: 16}, 0},
		{ListFilter{Page: 1, PageSize: 16}, 0},
		{ListFilter{Page: 3, PageSize: 16}, 32},
		{ListFilter{Page: 576460752303423489, PageSize: 16}, math.MaxInt},
		{ListFilter{Page: math.MaxInt, PageSize: 2}, math.MaxInt},
	}
	for _, c := range cases {
		if got := c.f.Offset(); got != c.want {
			t.Fatalf("Offset(%+v)=%d want %d", c.f, got, c.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 16, 1}, {1, 16, 1}, {16, 16, 1}, {17, 16, 2}, {33, 16, 3},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.size); got != c.want {
			t.Fatalf("totalPages(%d,%d)=%d want %d", c.total, c.size, got, c.want)
		}
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
