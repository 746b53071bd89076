package group

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	userdomain "chores-app-go/internal/domain/user"
)

type fakeGroupRepo struct {
	groups      map[int64]*Group
	userGroups  map[int64]*int64
	nextID      int64
	stats       []Contribution
	counts      SummaryCounts
	since       time.Time
	contributed []Contribution
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:     make(map[int64]*Group),
		userGroups: make(map[int64]*int64),
	}
}

func (r *fakeGroupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeGroupRepo) CreateGroup(ctx context.Context, group *Group) error {
	r.nextID++
	group.ID = r.nextID
	copied := *group
	r.groups[group.ID] = &copied
	return nil
}

func (r *fakeGroupRepo) GetGroupByID(ctx context.Context, groupID int64) (*Group, error) {
	group, ok := r.groups[groupID]
	if !ok {
		return nil, ErrGroupNotFound
	}
	copied := *group
	return &copied, nil
}

func (r *fakeGroupRepo) GetGroupByName(ctx context.Context, name string) (*Group, error) {
	for _, group := range r.groups {
		if group.Name == name {
			copied := *group
			return &copied, nil
		}
	}
	return nil, ErrGroupNotFound
}

func (r *fakeGroupRepo) IsNameTaken(ctx context.Context, name string) (bool, error) {
	_, err := r.GetGroupByName(ctx, name)
	return err == nil, nil
}

func (r *fakeGroupRepo) SetUserGroup(ctx context.Context, userID int64, groupID *int64) error {
	r.userGroups[userID] = groupID
	return nil
}

func (r *fakeGroupRepo) ListMembers(ctx context.Context, groupID int64) ([]Member, error) {
	result := make([]Member, 0)
	for userID, current := range r.userGroups {
		if current != nil && *current == groupID {
			result = append(result, Member{ID: userID})
		}
	}
	return result, nil
}

func (r *fakeGroupRepo) CompletedChoresByMember(ctx context.Context, groupID int64) ([]Contribution, error) {
	return r.stats, nil
}

func (r *fakeGroupRepo) SummaryCounts(ctx context.Context, groupID int64, since, now time.Time) (SummaryCounts, error) {
	r.since = since
	return r.counts, nil
}

func (r *fakeGroupRepo) ContributionsSince(ctx context.Context, groupID int64, since time.Time) ([]Contribution, error) {
	return r.contributed, nil
}

func groupPtr(id int64) *int64 {
	return &id
}

func TestCreateGroupJoinsCreator(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)
	alice := userdomain.Identity{ID: 1, Username: "alice"}

	group, err := svc.CreateGroup(context.Background(), alice, "Roomies", "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if group.ID == 0 || group.Name != "Roomies" {
		t.Fatalf("unexpected group %+v", group)
	}
	current := repo.userGroups[alice.ID]
	if current == nil || *current != group.ID {
		t.Fatalf("expected creator to join group %d, got %v", group.ID, current)
	}
}

func TestCreateGroupNameTaken(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	if _, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, "Roomies", "abc123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 2}, "Roomies", "zzz")
	if !errors.Is(err, ErrGroupNameTaken) {
		t.Fatalf("expected ErrGroupNameTaken, got %v", err)
	}
	if _, ok := repo.userGroups[2]; ok {
		t.Fatalf("expected second user to stay groupless")
	}
}

func TestCreateGroupValidation(t *testing.T) {
	svc := NewService(newFakeGroupRepo())

	_, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, " ", "abc")
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("expected ErrInvalidGroup, got %v", err)
	}
	_, err = svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, "Roomies", "this-code-is-too-long")
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("expected ErrInvalidGroup, got %v", err)
	}
}

func TestCreateGroupCountsCharactersNotBytes(t *testing.T) {
	svc := NewService(newFakeGroupRepo())
	name := strings.Repeat("ж", 30)

	group, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, name, "ключ-домой")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if group.Name != name {
		t.Fatalf("expected name %q, got %q", name, group.Name)
	}

	_, err = svc.CreateGroup(context.Background(), userdomain.Identity{ID: 2}, "bad\xffname", "abc")
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("expected ErrInvalidGroup for invalid UTF-8, got %v", err)
	}
}

func TestJoinGroupWrongCodeKeepsGroup(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	roomies, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, "Roomies", "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	other, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 2}, "Others", "xyz")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	bob := userdomain.Identity{ID: 2, GroupID: groupPtr(other.ID)}
	_, err = svc.JoinGroup(context.Background(), bob, "Roomies", "wrong")
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Fatalf("expected ErrInvalidInviteCode, got %v", err)
	}
	if current := repo.userGroups[2]; current == nil || *current != other.ID {
		t.Fatalf("expected group unchanged, got %v", current)
	}

	joined, err := svc.JoinGroup(context.Background(), bob, "Roomies", "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if joined.ID != roomies.ID {
		t.Fatalf("expected to join %d, got %d", roomies.ID, joined.ID)
	}
	if current := repo.userGroups[2]; current == nil || *current != roomies.ID {
		t.Fatalf("expected membership moved, got %v", current)
	}
}

func TestJoinGroupUnknownName(t *testing.T) {
	svc := NewService(newFakeGroupRepo())

	_, err := svc.JoinGroup(context.Background(), userdomain.Identity{ID: 1}, "Nobody", "abc")
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestLeaveGroup(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	if err := svc.LeaveGroup(context.Background(), userdomain.Identity{ID: 1}); !errors.Is(err, ErrNotInGroup) {
		t.Fatalf("expected ErrNotInGroup, got %v", err)
	}

	repo.userGroups[1] = groupPtr(5)
	if err := svc.LeaveGroup(context.Background(), userdomain.Identity{ID: 1, GroupID: groupPtr(5)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.userGroups[1] != nil {
		t.Fatalf("expected group cleared")
	}
}

func TestGroupReadsRequireMembership(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)

	group, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, "Roomies", "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	outsider := userdomain.Identity{ID: 9}
	if _, err := svc.ListMembers(context.Background(), outsider, group.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := userdomain.Identity{ID: 10, IsAdmin: true}
	members, err := svc.ListMembers(context.Background(), admin, group.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(members) != 1 || members[0].ID != 1 {
		t.Fatalf("unexpected members %+v", members)
	}

	if _, err := svc.Stats(context.Background(), admin, 999); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestSummaryWindowAndContributors(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewService(repo)
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	group, err := svc.CreateGroup(context.Background(), userdomain.Identity{ID: 1}, "Roomies", "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	member := userdomain.Identity{ID: 1, GroupID: groupPtr(group.ID)}

	repo.counts = SummaryCounts{Created: 4, Completed: 3, Late: 1, OverdueOpen: 2}
	repo.contributed = []Contribution{
		{UserID: 3, Username: "carol", Completed: 2},
		{UserID: 1, Username: "alice", Completed: 2},
		{UserID: 2, Username: "bob", Completed: 0},
		{UserID: 4, Username: "dave", Completed: 0},
	}

	summary, err := svc.Summary(context.Background(), member, group.ID, PeriodWeek)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !repo.since.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("expected week window, got %v", repo.since)
	}
	if summary.Counts.Completed != 3 || summary.Counts.OverdueOpen != 2 {
		t.Fatalf("unexpected counts %+v", summary.Counts)
	}
	if summary.TopContributor == nil || summary.TopContributor.UserID != 1 {
		t.Fatalf("expected top contributor 1, got %+v", summary.TopContributor)
	}
	if summary.LeastContributor == nil || summary.LeastContributor.UserID != 2 {
		t.Fatalf("expected least contributor 2, got %+v", summary.LeastContributor)
	}

	if _, err := svc.Summary(context.Background(), member, group.ID, PeriodMonth); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !repo.since.Equal(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected month window, got %v", repo.since)
	}
}

func TestSummaryWithoutMembers(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups[7] = &Group{ID: 7, Name: "Empty", InviteCode: "x"}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), userdomain.Identity{ID: 1, IsAdmin: true}, 7, PeriodWeek)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.TopContributor != nil || summary.LeastContributor != nil {
		t.Fatalf("expected no contributors, got %+v", summary)
	}
}

func TestParsePeriod(t *testing.T) {
	cases := map[string]Period{"": PeriodWeek, "week": PeriodWeek, "MONTH": PeriodMonth}
	for input, want := range cases {
		got, err := ParsePeriod(input)
		if err != nil || got != want {
			t.Fatalf("ParsePeriod(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParsePeriod("year"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

type mapCache struct {
	items map[int64]Group
}

func (c *mapCache) Get(groupID int64) (*Group, bool) {
	group, ok := c.items[groupID]
	if !ok {
		return nil, false
	}
	return &group, true
}

func (c *mapCache) Set(group *Group, ttl time.Duration) {
	c.items[group.ID] = *group
}

func (c *mapCache) Clear() {
	c.items = make(map[int64]Group)
}

func TestGetGroupUsesCache(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.groups[4] = &Group{ID: 4, Name: "Roomies", InviteCode: "AB12"}
	cache := &mapCache{items: make(map[int64]Group)}
	svc := NewService(repo).WithCache(cache, time.Minute)
	admin := userdomain.Identity{ID: 1, IsAdmin: true}

	if _, err := svc.GetGroup(context.Background(), admin, 4); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	delete(repo.groups, 4)

	group, err := svc.GetGroup(context.Background(), admin, 4)
	if err != nil || group.Name != "Roomies" {
		t.Fatalf("expected cached group, got %+v, %v", group, err)
	}

	svc.ForgetGroups()
	if _, err := svc.GetGroup(context.Background(), admin, 4); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound after reset, got %v", err)
	}
}
